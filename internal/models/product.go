package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is embedded in a product document. Reviews are only removed when the
// product itself is deleted.
type Review struct {
	UserID    *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Name      string              `bson:"name" json:"name"`
	Rating    int                 `bson:"rating" json:"rating"`
	Comment   string              `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// Product is a catalog listing. Quantity and price are free text because seed
// data embeds unit suffixes ("5 kg") and currency symbols ("₹120").
// The tuple (name, startup, category, contact.email, contact.phone) is unique.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Startup     string             `bson:"startup,omitempty" json:"startup,omitempty"`
	Quantity    string             `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Price       string             `bson:"price,omitempty" json:"price,omitempty"`
	Contact     Contact            `bson:"contact,omitempty" json:"contact,omitempty"`
	Images      []string           `bson:"images" json:"images"`
	Reviews     []Review           `bson:"reviews" json:"reviews"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
