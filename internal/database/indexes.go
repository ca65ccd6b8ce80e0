package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureUserIndexes creates the unique email index on users.
func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	_, err := db.Collection("users").Indexes().CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	return nil
}

// EnsureProductIndexes creates the compound unique index that prevents
// duplicate listings. Two products may share a name as long as they differ in
// startup, category or contact details.
func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	listingIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "name", Value: 1},
			{Key: "startup", Value: 1},
			{Key: "category", Value: 1},
			{Key: "contact.email", Value: 1},
			{Key: "contact.phone", Value: 1},
		},
		Options: options.Index().
			SetName("listing_unique").
			SetUnique(true),
	}

	log.Println("EnsureProductIndexes: creating listing_unique index")
	_, err := db.Collection("products").Indexes().CreateOne(ctx, listingIndex)
	if err != nil {
		log.Println("EnsureProductIndexes: listing index error:", err)
		return err
	}
	return nil
}

// EnsureStartupIndexes mirrors the product listing constraint for startups.
func EnsureStartupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	startupIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "name", Value: 1},
			{Key: "focusArea", Value: 1},
			{Key: "contact.email", Value: 1},
			{Key: "contact.phone", Value: 1},
		},
		Options: options.Index().
			SetName("startup_unique").
			SetUnique(true),
	}

	log.Println("EnsureStartupIndexes: creating startup_unique index")
	_, err := db.Collection("startups").Indexes().CreateOne(ctx, startupIndex)
	if err != nil {
		log.Println("EnsureStartupIndexes: startup index error:", err)
		return err
	}
	return nil
}

// EnsureOrderIndexes creates the unique orderNumber index (the enforcement
// point behind generated order numbers) plus the userId lookup index.
func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "orderNumber", Value: 1}},
			Options: options.Index().
				SetName("orderNumber_unique").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("userId_index"),
		},
	}

	log.Println("EnsureOrderIndexes: creating orderNumber_unique and userId_index")
	_, err := db.Collection("orders").Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Println("EnsureOrderIndexes: order index error:", err)
		return err
	}
	return nil
}
