package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chandrashekarRravi/Krishik-Agri-Business-Incubator-sub000/internal/models"
)

type reviewRequest struct {
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func validateReviewRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

/*
POST /products/:id/reviews
- open to anonymous callers
- when a bearer token is presented, the author identity comes from its
  claims, not from the body
*/
func AddReview(db *mongo.Database, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if err := validateReviewRating(req.Rating); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		review := models.Review{
			Name:      strings.TrimSpace(req.Name),
			Rating:    req.Rating,
			Comment:   strings.TrimSpace(req.Comment),
			CreatedAt: time.Now(),
		}

		if userID, name, err := reviewAuthorFromHeader(c.GetHeader("Authorization"), jwtSecret); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		} else if userID != nil {
			review.UserID = userID
			if name != "" {
				review.Name = name
			}
		} else if id := strings.TrimSpace(req.UserID); id != "" {
			parsed, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
				return
			}
			review.UserID = &parsed
		}

		if review.Name == "" {
			review.Name = "Anonymous"
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		res, err := db.Collection("products").UpdateByID(ctx, productID, bson.M{
			"$push": bson.M{"reviews": review},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
		if err != nil {
			log.Println("[REVIEW] [ERROR] append failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		log.Println("[REVIEW] [INFO] review added to product:", productID.Hex())
		c.JSON(http.StatusCreated, gin.H{"review": review})
	}
}

func GetReviews(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		var product models.Product
		err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"reviews": product.Reviews})
	}
}

// reviewAuthorFromHeader returns (nil, "", nil) when no token is presented;
// an invalid token is an error rather than a fallback to the body identity.
func reviewAuthorFromHeader(header, secret string) (*primitive.ObjectID, string, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return nil, "", nil
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, "", fmt.Errorf("invalid token format")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "", fmt.Errorf("invalid token claims")
	}

	userIDValue, _ := claims["userId"].(string)
	userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(userIDValue))
	if err != nil {
		return nil, "", fmt.Errorf("invalid userId claim")
	}

	name, _ := claims["name"].(string)
	if name == "" {
		name, _ = claims["email"].(string)
	}

	return &userID, name, nil
}
