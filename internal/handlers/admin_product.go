package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chandrashekarRravi/Krishik-Agri-Business-Incubator-sub000/internal/models"
)

func CreateProduct(db *mongo.Database, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /products"
		defer handlePanic(c, route)

		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "multipart/form-data required"})
			return
		}

		input, err := parseMultipartProductRequest(c, uploadDir)
		if err != nil {
			log.Println("CreateProduct multipart error:", err)
			respondMultipartError(c, err)
			return
		}

		if !input.NameSet || input.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
			return
		}

		now := time.Now()
		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Category:    input.Category,
			Startup:     input.Startup,
			Quantity:    input.Quantity,
			Price:       input.Price,
			Contact:     input.Contact,
			Images:      []string{},
			Reviews:     []models.Review{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if input.ImageSet {
			product.Images = append(product.Images, input.ImagePath)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "duplicate product listing"})
				return
			}
			log.Println("CreateProduct insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		product.ID, _ = res.InsertedID.(primitive.ObjectID)
		log.Println("CreateProduct insert success:", product.ID.Hex())
		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(db *mongo.Database, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "multipart/form-data required"})
			return
		}

		input, err := parseMultipartProductRequest(c, uploadDir)
		if err != nil {
			log.Println("UpdateProduct multipart error:", err)
			respondMultipartError(c, err)
			return
		}

		updateSet := bson.M{"updatedAt": time.Now()}
		if input.NameSet {
			if input.Name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
				return
			}
			updateSet["name"] = input.Name
		}
		if input.DescriptionSet {
			updateSet["description"] = input.Description
		}
		if input.CategorySet {
			updateSet["category"] = input.Category
		}
		if input.StartupSet {
			updateSet["startup"] = input.Startup
		}
		if input.QuantitySet {
			updateSet["quantity"] = input.Quantity
		}
		if input.PriceSet {
			updateSet["price"] = input.Price
		}
		if input.ContactSet {
			updateSet["contact"] = input.Contact
		}

		update := bson.M{"$set": updateSet}
		if input.ImageSet {
			update["$push"] = bson.M{"images": input.ImagePath}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		res, err := db.Collection("products").UpdateByID(ctx, id, update)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "duplicate product listing"})
				return
			}
			log.Println("UpdateProduct update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("UpdateProduct success:", id.Hex())
		c.JSON(http.StatusOK, product)
	}
}

func DeleteProduct(db *mongo.Database, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		var product models.Product
		err := db.Collection("products").FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			log.Println("DeleteProduct error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		for _, image := range product.Images {
			if err := safeDeleteUpload(uploadDir, image); err != nil {
				log.Println("DeleteProduct image cleanup:", err)
			}
		}

		log.Println("DeleteProduct success:", id.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
