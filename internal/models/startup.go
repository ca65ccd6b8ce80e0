package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Startup is an incubated agri-business. ProductCount is denormalized and can
// drift from the catalog under concurrent writes; it is advisory, not an
// invariant. The tuple (name, focusArea, contact.email, contact.phone) is
// unique.
type Startup struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	FocusArea    string             `bson:"focusArea,omitempty" json:"focusArea,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Contact      Contact            `bson:"contact,omitempty" json:"contact,omitempty"`
	ProductCount int                `bson:"productCount" json:"productCount"`
	Featured     bool               `bson:"featured" json:"featured"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
