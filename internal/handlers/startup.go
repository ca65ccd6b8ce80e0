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
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chandrashekarRravi/Krishik-Agri-Business-Incubator-sub000/internal/models"
)

type startupRequest struct {
	Name        string          `json:"name" binding:"required"`
	FocusArea   string          `json:"focusArea"`
	Description string          `json:"description"`
	Contact     *models.Contact `json:"contact"`
	Featured    *bool           `json:"featured"`
}

func GetStartups(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /startups"
		defer handlePanic(c, route)

		filter := bson.M{}
		if featured := strings.TrimSpace(c.Query("featured")); featured != "" {
			filter["featured"] = strings.EqualFold(featured, "true")
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		cursor, err := db.Collection("startups").Find(
			ctx,
			filter,
			options.Find().SetSort(bson.D{{Key: "name", Value: 1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		startups := make([]models.Startup, 0)
		if err := cursor.All(ctx, &startups); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": startups})
	}
}

func GetStartup(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		var startup models.Startup
		err := db.Collection("startups").FindOne(ctx, bson.M{"_id": id}).Decode(&startup)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "startup not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, startup)
	}
}

func CreateStartup(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req startupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		now := time.Now()
		startup := models.Startup{
			Name:        strings.TrimSpace(req.Name),
			FocusArea:   strings.TrimSpace(req.FocusArea),
			Description: strings.TrimSpace(req.Description),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if req.Contact != nil {
			startup.Contact = *req.Contact
		}
		if req.Featured != nil {
			startup.Featured = *req.Featured
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		res, err := db.Collection("startups").InsertOne(ctx, startup)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "duplicate startup listing"})
				return
			}
			log.Println("[STARTUP] [ERROR] insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		startup.ID, _ = res.InsertedID.(primitive.ObjectID)
		log.Println("[STARTUP] [INFO] startup created:", startup.Name)
		c.JSON(http.StatusCreated, startup)
	}
}

func UpdateStartup(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		var req startupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		updateSet := bson.M{
			"name":        strings.TrimSpace(req.Name),
			"focusArea":   strings.TrimSpace(req.FocusArea),
			"description": strings.TrimSpace(req.Description),
			"updatedAt":   time.Now(),
		}
		if req.Contact != nil {
			updateSet["contact"] = *req.Contact
		}
		if req.Featured != nil {
			updateSet["featured"] = *req.Featured
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		res := db.Collection("startups").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": updateSet},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)

		var startup models.Startup
		if err := res.Decode(&startup); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "startup not found"})
				return
			}
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "duplicate startup listing"})
				return
			}
			log.Println("[STARTUP] [ERROR] update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, startup)
	}
}

func DeleteStartup(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		res, err := db.Collection("startups").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Println("[STARTUP] [ERROR] delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "startup not found"})
			return
		}

		log.Println("[STARTUP] [INFO] startup deleted:", id.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "startup deleted"})
	}
}
