package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order records a purchase. ProductID is nil for seed-catalog items that only
// exist as denormalized names; ProductName is always the point-in-time snapshot
// shown to the customer. OrderNumber carries a unique index, which is the real
// uniqueness guarantee behind the generated value.
type Order struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID  `bson:"userId" json:"userId"`
	ProductID         *primitive.ObjectID `bson:"productId,omitempty" json:"productId,omitempty"`
	ProductName       string              `bson:"productName" json:"productName"`
	OrderNumber       string              `bson:"orderNumber" json:"orderNumber"`
	Quantity          int                 `bson:"quantity" json:"quantity"`
	Total             float64             `bson:"total" json:"total"`
	Status            string              `bson:"status" json:"status"`
	ShippingAddress   string              `bson:"shippingAddress" json:"shippingAddress"`
	EstimatedDelivery time.Time           `bson:"estimatedDelivery" json:"estimatedDelivery"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
}
