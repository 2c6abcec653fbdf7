package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskapp/services"

	"github.com/gin-gonic/gin"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AccessTokenMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString("userId")})
	})
	return router
}

func getProtected(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAccessTokenMiddlewareAcceptsAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	router := protectedRouter()

	token, err := services.CreateAccessToken("owner1", "a@b.com")
	if err != nil {
		t.Fatalf("create access token: %v", err)
	}

	w := getProtected(router, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
}

func TestAccessTokenMiddlewareRejectsVerifyToken(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	router := protectedRouter()

	// The verification-link token is mailed to the user in plaintext and
	// lives far longer than an access token. It carries the same signature
	// key, so the middleware must reject it by subject.
	token, err := services.CreateVerifyToken("owner1", "a@b.com")
	if err != nil {
		t.Fatalf("create verify token: %v", err)
	}

	w := getProtected(router, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("verify token accepted: status = %d (body %s)", w.Code, w.Body.String())
	}
}

func TestAccessTokenMiddlewareRejectsRefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("JWT_REFRESH_SECRET_KEY", "other-secret")
	router := protectedRouter()

	token, err := services.CreateRefreshToken("owner1")
	if err != nil {
		t.Fatalf("create refresh token: %v", err)
	}

	w := getProtected(router, token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("refresh token accepted: status = %d", w.Code)
	}
}

func TestAccessTokenMiddlewareMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	router := protectedRouter()

	w := getProtected(router, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
