package handlers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateReviewRating(t *testing.T) {
	for _, rating := range []int{1, 3, 5} {
		if err := validateReviewRating(rating); err != nil {
			t.Fatalf("rating %d should be valid: %v", rating, err)
		}
	}
	for _, rating := range []int{0, -1, 6, 100} {
		if err := validateReviewRating(rating); err == nil {
			t.Fatalf("rating %d should be rejected", rating)
		}
	}
}

func TestReviewAuthorFromHeaderAnonymous(t *testing.T) {
	userID, name, err := reviewAuthorFromHeader("", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != nil || name != "" {
		t.Fatalf("expected anonymous author, got %v %q", userID, name)
	}
}

func TestReviewAuthorFromHeaderValidToken(t *testing.T) {
	id := primitive.NewObjectID()
	claims := jwt.MapClaims{
		"userId": id.Hex(),
		"name":   "Deepa",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	userID, name, err := reviewAuthorFromHeader("Bearer "+token, "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID == nil || *userID != id {
		t.Fatalf("expected token subject %s, got %v", id.Hex(), userID)
	}
	if name != "Deepa" {
		t.Fatalf("expected claim name, got %q", name)
	}
}

func TestReviewAuthorFromHeaderRejectsInvalidToken(t *testing.T) {
	if _, _, err := reviewAuthorFromHeader("Bearer garbage", "secret"); err == nil {
		t.Fatal("expected error for invalid token")
	}
	if _, _, err := reviewAuthorFromHeader("Basic abc", "secret"); err == nil {
		t.Fatal("expected error for non-bearer scheme")
	}
}
