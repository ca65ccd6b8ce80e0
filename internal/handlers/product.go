package handlers

import (
	"context"
	"log"
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chandrashekarRravi/Krishik-Agri-Business-Incubator-sub000/internal/models"
)

/*
GET /products
- page/limit pagination (defaults 1/12, limit capped)
- optional category/search filters; the frontend still filters the loaded
  page client-side, these are opt-in narrowing only
*/
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		filter := bson.M{}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["name"] = bson.M{"$regex": search, "$options": "i"}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		totalPages := int64(0)
		if total > 0 {
			totalPages = int64(math.Ceil(float64(total) / float64(limit)))
		}

		findOptions := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("products").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d products page=%d", route, len(products), page)
		c.JSON(http.StatusOK, gin.H{
			"data":       products,
			"page":       page,
			"totalPages": totalPages,
			"total":      total,
		})
	}
}

// GetProductCategories returns the sorted distinct non-empty category values
// across the entire collection, independent of pagination.
func GetProductCategories(db *mongo.Database) gin.HandlerFunc {
	return distinctFieldValues(db, "category")
}

// GetProductStartups returns the sorted distinct non-empty startup names
// present on catalog entries.
func GetProductStartups(db *mongo.Database) gin.HandlerFunc {
	return distinctFieldValues(db, "startup")
}

func distinctFieldValues(db *mongo.Database, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		raw, err := db.Collection("products").Distinct(ctx, field, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		values := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				values = append(values, s)
			}
		}
		sort.Strings(values)

		c.JSON(http.StatusOK, gin.H{field: values})
	}
}

func GetProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		var product models.Product
		err := db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// GetSchemaFormat documents the bulk-upload record layout. Pure static
// metadata so the admin UI can render guidance without a round trip per field.
func GetSchemaFormat() gin.HandlerFunc {
	payload := gin.H{
		"fields": []gin.H{
			{"name": "name", "type": "string", "required": true},
			{"name": "description", "type": "string", "required": false},
			{"name": "category", "type": "string", "required": false},
			{"name": "startup", "type": "string", "required": false},
			{"name": "quantity", "type": "string", "required": false},
			{"name": "price", "type": "string", "required": false},
			{"name": "image", "type": "string (URL)", "required": true},
			{"name": "contact.name", "type": "string", "required": false},
			{"name": "contact.phone", "type": "string", "required": false},
			{"name": "contact.email", "type": "string", "required": false},
		},
		"example": gin.H{
			"name":          "Organic Jaggery",
			"description":   "Chemical-free jaggery blocks",
			"category":      "Food Products",
			"startup":       "AgriSweet Naturals",
			"quantity":      "1 kg",
			"price":         "₹120",
			"image":         "https://example.com/jaggery.png",
			"contact.name":  "Ravi Kumar",
			"contact.phone": "9876543210",
			"contact.email": "ravi@agrisweet.in",
		},
		"acceptedExtensions": []string{".xlsx", ".xls", ".docx"},
		"pagination":         gin.H{"defaultLimit": defaultLimit, "maxLimit": maxLimit},
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, payload)
	}
}
