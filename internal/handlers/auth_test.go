package handlers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIssueTokenRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()
	signed, err := issueToken(userID, "farmer@example.com", true, "secret", time.Hour)
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token did not verify: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if claims["userId"] != userID.Hex() {
		t.Fatalf("expected userId claim %s, got %v", userID.Hex(), claims["userId"])
	}
	if claims["email"] != "farmer@example.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
	if isAdmin, _ := claims["isAdmin"].(bool); !isAdmin {
		t.Fatal("expected isAdmin claim to survive the round trip")
	}
}

func TestIssueTokenRejectedWithWrongSecret(t *testing.T) {
	userID := primitive.NewObjectID()
	signed, err := issueToken(userID, "farmer@example.com", false, "secret", time.Hour)
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil && token.Valid {
		t.Fatal("expected verification failure with the wrong secret")
	}
}
