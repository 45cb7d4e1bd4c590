package util

import (
	"content-backend/config"
	"content-backend/internal/errors"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
)

func init() {
	config.AppConfig.JWTSecret = "test-secret"
}

// signToken 用指定密钥签发测试令牌（凭证签发在生产中由外部系统完成）
func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return tokenString
}

// TestValidateToken 有效令牌应返回其中的用户ID
func TestValidateToken(t *testing.T) {
	tokenString := signToken(t, config.AppConfig.JWTSecret, jwt.MapClaims{
		"user_id": "user-42",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	userID, err := ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

// TestValidateTokenMissing 空令牌应返回缺失令牌错误
func TestValidateTokenMissing(t *testing.T) {
	_, err := ValidateToken("")
	assert.True(t, errors.Is(err, errors.ErrMissingToken))
}

// TestValidateTokenWrongSecret 使用其他密钥签发的令牌应验证失败
func TestValidateTokenWrongSecret(t *testing.T) {
	tokenString := signToken(t, "another-secret", jwt.MapClaims{
		"user_id": "user-42",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, err := ValidateToken(tokenString)
	assert.True(t, errors.Is(err, errors.ErrInvalidToken))
}

// TestValidateTokenExpired 过期令牌应返回过期错误
func TestValidateTokenExpired(t *testing.T) {
	tokenString := signToken(t, config.AppConfig.JWTSecret, jwt.MapClaims{
		"user_id": "user-42",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	_, err := ValidateToken(tokenString)
	assert.True(t, errors.Is(err, errors.ErrTokenExpired))
}

// TestValidateTokenMalformed 结构损坏的令牌应验证失败
func TestValidateTokenMalformed(t *testing.T) {
	_, err := ValidateToken("not-a-jwt")
	assert.True(t, errors.Is(err, errors.ErrInvalidToken))
}

// TestValidateTokenMissingSubject 缺少用户ID的令牌应验证失败
func TestValidateTokenMissingSubject(t *testing.T) {
	tokenString := signToken(t, config.AppConfig.JWTSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := ValidateToken(tokenString)
	assert.True(t, errors.Is(err, errors.ErrInvalidToken))
}
