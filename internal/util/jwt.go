package util

import (
	"content-backend/config"
	"content-backend/internal/errors"

	"github.com/dgrijalva/jwt-go"
)

// ValidateToken 验证令牌并返回其中的用户ID。凭证签发由外部系统负责，
// 本服务只做验证。
// 验证是纯计算，不访问任何外部存储，令牌一经验证即在本次请求内受信任。
func ValidateToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errors.New(errors.ErrMissingToken, "令牌为空")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(errors.ErrInvalidToken, "意外的签名算法")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", errors.Wrap(errors.ErrTokenExpired, "令牌已过期", err)
		}
		return "", errors.Wrap(errors.ErrInvalidToken, "无效的令牌", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			return "", errors.New(errors.ErrInvalidToken, "无效的用户ID")
		}
		return userID, nil
	}

	return "", errors.New(errors.ErrInvalidToken, "无效的令牌")
}
