package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/chandrashekarRravi/Krishik-Agri-Business-Incubator-sub000/internal/config"
	"github.com/chandrashekarRravi/Krishik-Agri-Business-Incubator-sub000/internal/database"
	"github.com/chandrashekarRravi/Krishik-Agri-Business-Incubator-sub000/internal/handlers"
	"github.com/chandrashekarRravi/Krishik-Agri-Business-Incubator-sub000/internal/mailer"
	"github.com/chandrashekarRravi/Krishik-Agri-Business-Incubator-sub000/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)
	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureStartupIndexes(db); err != nil {
		log.Printf("startup index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}

	mail := mailer.NewSMTP(config.AppEnv.SMTP)

	secret := config.AppEnv.JWTSecret
	ttl := config.AppEnv.AccessTokenTTL
	uploadDir := config.AppEnv.UploadDir

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.Static("/uploads", uploadDir)

	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register(db, secret, ttl))
		auth.POST("/login", handlers.Login(db, secret, ttl))
		auth.GET("/me", middleware.AuthGuard(secret), handlers.GetMe(db))
		auth.PUT("/profile", middleware.AuthGuard(secret), handlers.UpdateProfile(db, uploadDir))

		address := auth.Group("/address")
		address.Use(middleware.AuthGuard(secret))
		{
			address.GET("", handlers.GetUserAddresses(db))
			address.POST("", handlers.CreateUserAddress(db))
			address.PUT("/:id", handlers.UpdateUserAddress(db))
			address.DELETE("/:id", handlers.DeleteUserAddress(db))
		}
	}

	products := r.Group("/products")
	{
		products.GET("", handlers.GetProducts(db))
		products.GET("/categories", handlers.GetProductCategories(db))
		products.GET("/startups", handlers.GetProductStartups(db))
		products.GET("/schema-format", handlers.GetSchemaFormat())
		products.GET("/:id", handlers.GetProduct(db))
		products.GET("/:id/reviews", handlers.GetReviews(db))
		products.POST("/:id/reviews", handlers.AddReview(db, secret))

		admin := products.Group("")
		admin.Use(middleware.AdminOnly(secret))
		{
			admin.POST("", handlers.CreateProduct(db, uploadDir))
			admin.POST("/bulk-upload", handlers.BulkUploadProducts(db))
			admin.PUT("/:id", handlers.UpdateProduct(db, uploadDir))
			admin.DELETE("/:id", handlers.DeleteProduct(db, uploadDir))
		}
	}

	startups := r.Group("/startups")
	{
		startups.GET("", handlers.GetStartups(db))
		startups.GET("/:id", handlers.GetStartup(db))

		admin := startups.Group("")
		admin.Use(middleware.AdminOnly(secret))
		{
			admin.POST("", handlers.CreateStartup(db))
			admin.PUT("/:id", handlers.UpdateStartup(db))
			admin.DELETE("/:id", handlers.DeleteStartup(db))
		}
	}

	orders := r.Group("/orders")
	orders.Use(middleware.AuthGuard(secret))
	{
		orders.POST("", handlers.CreateOrder(db, mail))
		orders.GET("", handlers.GetOrders(db))
		orders.GET("/:id", handlers.GetOrder(db))
		orders.PATCH("/:id/status", middleware.AdminOnly(secret), handlers.UpdateOrderStatus(db))
		orders.DELETE("/:id", middleware.AdminOnly(secret), handlers.DeleteOrder(db))
	}

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
