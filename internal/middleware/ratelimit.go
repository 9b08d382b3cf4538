package middleware

import (
	"net/http"
	"time"

	"AJY_Stylist/internal/config"
	"AJY_Stylist/internal/locale"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// RateLimit 클라이언트 IP 단위 토큰 버킷 제한 (유료 API 호출 경로에만 적용)
// 호출마다 별도의 버킷 집합을 가지며, exempt 중 하나라도 true 면 제한하지 않음
func RateLimit(cfg config.RateLimitConfig, exempt ...func(*gin.Context) bool) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	// 라이브러리의 버킷 저장소는 패키지 전역이므로 인스턴스별 접두어로 구분
	scope := uuid.NewString()
	limiter := limit.NewRateLimiter(
		func(c *gin.Context) string {
			return scope + ":" + c.ClientIP()
		},
		func(c *gin.Context) (*rate.Limiter, time.Duration) {
			return rate.NewLimiter(rate.Every(cfg.Interval), cfg.Burst), cfg.Expire
		},
		func(c *gin.Context) {
			l := locale.FromAcceptLanguage(c.GetHeader("Accept-Language"))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": locale.MessagesFor(l).RateLimited})
		},
	)

	return func(c *gin.Context) {
		for _, skip := range exempt {
			if skip(c) {
				c.Next()
				return
			}
		}
		limiter(c)
	}
}
