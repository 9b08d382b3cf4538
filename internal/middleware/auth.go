package middleware

import (
	"errors"
	"net/http"
	"strings"

	"AJY_Stylist/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// gin.Context 키
const (
	ContextEmail  = "email"
	ContextUserID = "userID"
)

// AuthMiddleware Bearer 토큰을 검증해 이메일/사용자 ID를 컨텍스트에 저장
// optional 이면 헤더가 없거나 검증기가 비활성화된 경우 그대로 통과
// 필수 모드에서 검증기가 비활성화되어 있으면 503
func AuthMiddleware(v *auth.Validator, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !v.Enabled() {
			if optional {
				c.Next()
				return
			}
			// 토큰 검증 불가 상태에서는 인증 필요 경로 자체를 비활성화
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Authentication not available"})
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := v.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextEmail, claims.Email)
		c.Set(ContextUserID, claims.Subject)
		c.Next()
	}
}
