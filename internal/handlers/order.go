package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chandrashekarRravi/Krishik-Agri-Business-Incubator-sub000/internal/mailer"
	"github.com/chandrashekarRravi/Krishik-Agri-Business-Incubator-sub000/internal/models"
)

const (
	orderNumberPrefix = "KAB"
	deliveryOffset    = 5 * 24 * time.Hour
	defaultStatus     = "Processing"
)

type createOrderRequest struct {
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName" binding:"required"`
	Quantity        int     `json:"quantity" binding:"required"`
	Total           float64 `json:"total" binding:"required"`
	ShippingAddress string  `json:"shippingAddress" binding:"required"`
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// newOrderNumber builds a human-readable order identifier. Uniqueness is
// probabilistic; the unique index on orderNumber is the enforcement point and
// turns a collision into an insertion failure rather than an overwrite.
func newOrderNumber(now time.Time) string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// fall back to the timestamp alone; the index still guards
		return fmt.Sprintf("%s-%d", orderNumberPrefix, now.UnixMilli())
	}
	return fmt.Sprintf("%s-%d-%s", orderNumberPrefix, now.UnixMilli(), hex.EncodeToString(buf))
}

func estimatedDeliveryFrom(now time.Time) time.Time {
	return now.Add(deliveryOffset)
}

// orderPlacedMessage distinguishes "placed" from "placed but notification
// failed" — the order is the durable fact, the email is best-effort.
func orderPlacedMessage(mailErr error) string {
	if mailErr != nil {
		return "Order placed, but the confirmation email could not be sent"
	}
	return "Order placed successfully"
}

/*
POST /orders
- persists the order first, then dispatches the confirmation email; a mail
  failure never rolls back the order
*/
func CreateOrder(db *mongo.Database, mail mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if req.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be greater than zero"})
			return
		}
		if req.Total <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "total must be greater than zero"})
			return
		}

		// Product references are optional: seed-catalog items only exist as
		// denormalized names, and the catalog is a point-in-time snapshot at
		// order time either way.
		var productID *primitive.ObjectID
		if raw := strings.TrimSpace(req.ProductID); raw != "" {
			parsed, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
				return
			}
			productID = &parsed
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		now := time.Now()
		order := models.Order{
			UserID:            userID,
			ProductID:         productID,
			ProductName:       strings.TrimSpace(req.ProductName),
			OrderNumber:       newOrderNumber(now),
			Quantity:          req.Quantity,
			Total:             req.Total,
			Status:            defaultStatus,
			ShippingAddress:   strings.TrimSpace(req.ShippingAddress),
			EstimatedDelivery: estimatedDeliveryFrom(now),
			CreatedAt:         now,
		}

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusConflict, route, "order number collision, please retry")
				return
			}
			log.Println("[ORDER] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		order.ID, _ = res.InsertedID.(primitive.ObjectID)

		mailErr := mail.SendOrderConfirmation(user.Email, user.Name, order)
		if mailErr != nil {
			log.Println("[ORDER] [ERROR] confirmation email failed:", mailErr)
		}

		log.Println("[ORDER] [INFO] order created:", order.OrderNumber)
		c.JSON(http.StatusCreated, gin.H{
			"message": orderPlacedMessage(mailErr),
			"order":   order,
		})
	}
}

/*
GET /orders
- a user sees their own orders; an admin token with ?all=true sees everything
*/
func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		// Non-admin callers are always scoped to their own token subject; the
		// userId and all parameters are honored for admin tokens only.
		filter := bson.M{"userId": userID}
		if isAdminRequest(c) {
			if raw := strings.TrimSpace(c.Query("userId")); raw != "" {
				target, err := primitive.ObjectIDFromHex(raw)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
					return
				}
				filter = bson.M{"userId": target}
			} else if strings.EqualFold(c.Query("all"), "true") {
				filter = bson.M{}
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		cursor, err := db.Collection("orders").Find(
			ctx,
			filter,
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": orders})
	}
}

func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if order.UserID != userID && !isAdminRequest(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

/*
PATCH /orders/:id/status (admin)
- status is the only mutable field after placement
*/
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		status := strings.TrimSpace(req.Status)
		if status == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		res := db.Collection("orders").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"status": status}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)

		var order models.Order
		if err := res.Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			log.Println("[ORDER] [ERROR] status update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[ORDER] [INFO] status updated:", order.OrderNumber, "->", status)
		c.JSON(http.StatusOK, order)
	}
}

func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
