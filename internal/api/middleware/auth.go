package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/princeprakhar/partnerhub/internal/utils"
)

const (
	msgNoCredentials = "자격 인증데이터(authentication credentials)가 제공되지 않았습니다."
	msgInvalidToken  = "이 토큰은 모든 타입의 토큰에 대해 유효하지 않습니다"
)

func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.SendUnauthorized(c, msgNoCredentials)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.SendUnauthorized(c, msgNoCredentials)
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, utils.AccessToken, jwtSecret)
		if err != nil {
			utils.SendUnauthorized(c, msgInvalidToken)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}
