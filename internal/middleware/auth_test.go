package middleware

import (
	"content-backend/config"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	config.AppConfig.JWTSecret = "test-secret"
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

// TestAuthMiddlewareMissingHeader 无凭证的请求应被拒绝
func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := setupAuthRouter()

	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuthMiddlewareBadFormat 非 Bearer 格式的凭证应被拒绝
func TestAuthMiddlewareBadFormat(t *testing.T) {
	router := setupAuthRouter()

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuthMiddlewareInvalidToken 无效令牌应被拒绝
func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := setupAuthRouter()

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuthMiddlewareValidToken 有效令牌应放行并在上下文写入用户ID
func TestAuthMiddlewareValidToken(t *testing.T) {
	router := setupAuthRouter()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-7",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(config.AppConfig.JWTSecret))
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "user-7", response["user_id"])
}
