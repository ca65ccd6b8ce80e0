package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, isAdmin bool, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"userId":  primitive.NewObjectID().Hex(),
		"email":   "user@example.com",
		"isAdmin": isAdmin,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func guardedRouter(guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", guard, func(c *gin.Context) {
		if _, ok := c.Get("userId"); !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "userId not injected"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func request(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthGuardMissingToken(t *testing.T) {
	r := guardedRouter(AuthGuard(testSecret))
	if rec := request(r, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthGuardMalformedHeader(t *testing.T) {
	r := guardedRouter(AuthGuard(testSecret))
	if rec := request(r, "NotBearer abc"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthGuardInvalidSignature(t *testing.T) {
	claims := jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))

	r := guardedRouter(AuthGuard(testSecret))
	if rec := request(r, "Bearer "+token); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthGuardExpiredToken(t *testing.T) {
	token := signedToken(t, false, -time.Minute)
	r := guardedRouter(AuthGuard(testSecret))
	if rec := request(r, "Bearer "+token); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthGuardValidTokenPassesThrough(t *testing.T) {
	token := signedToken(t, false, time.Hour)
	r := guardedRouter(AuthGuard(testSecret))
	if rec := request(r, "Bearer "+token); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAdminOnlyRejectsNonAdmin(t *testing.T) {
	token := signedToken(t, false, time.Hour)
	r := guardedRouter(AdminOnly(testSecret))
	if rec := request(r, "Bearer "+token); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAdminOnlyAcceptsAdmin(t *testing.T) {
	token := signedToken(t, true, time.Hour)
	r := guardedRouter(AdminOnly(testSecret))
	if rec := request(r, "Bearer "+token); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}
