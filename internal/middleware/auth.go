package middleware

import (
	"content-backend/internal/errors"
	"content-backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware 验证请求携带的 Bearer 令牌并将用户ID写入上下文。
// 验证是无状态的：令牌一经签名校验即受信任，不支持撤销。
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.HandleError(c, errors.New(errors.ErrMissingToken, "需要认证"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			errors.HandleError(c, errors.New(errors.ErrInvalidToken, "无效的认证格式"))
			c.Abort()
			return
		}

		userID, err := util.ValidateToken(parts[1])
		if err != nil {
			errors.HandleError(c, err)
			c.Abort()
			return
		}

		util.Logger.Info("令牌验证通过",
			zap.String("user_id", userID),
			zap.String("path", c.Request.URL.Path))

		c.Set("user_id", userID)
		c.Next()
	}
}
