package handler

import (
	"net/http"
	"time"

	_ "AJY_Stylist/docs"
	"AJY_Stylist/internal/metrics"
	"AJY_Stylist/internal/middleware"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// NewRouter 라우트 등록
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(h.proxies); err != nil {
		h.logger.Warn("NewRouter(): invalid trusted proxies, forwarded headers ignored", zap.Strings("proxies", h.proxies), zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(ginzap.Ginzap(h.logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(h.logger, true))
	router.Use(metrics.Middleware())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	router.Use(cors.New(config))

	router.GET("/health", h.Health)
	router.GET("/version", h.Version)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 경로마다 버킷을 분리 (checkout 호출이 결제 후 analyze 를 막지 않도록)
	limited := func(exempt ...func(*gin.Context) bool) gin.HandlerFunc {
		return middleware.RateLimit(h.limits, exempt...)
	}
	optionalAuth := middleware.AuthMiddleware(h.auth, true)

	api := router.Group("/api")
	{
		api.POST("/checkout", limited(), h.Checkout)
		api.POST("/analyze", limited(h.paidCheckout), optionalAuth, h.Analyze)
		api.POST("/generate-image", limited(), h.GenerateImage)
		api.POST("/send-email", limited(), h.SendEmail)
		api.POST("/report-audio", limited(), h.ReportAudio)

		api.GET("/subscription", optionalAuth, h.Subscription)
		api.POST("/cancel-subscription", optionalAuth, h.CancelSubscription)
	}

	protected := router.Group("/api/history").Use(middleware.AuthMiddleware(h.auth, false))
	{
		protected.GET("", h.ListHistory)
		protected.GET("/:id", h.GetHistory)
	}

	router.GET("/ws/analyze", limited(), h.HandleAnalyzeConnection)
	return router
}

// Health godoc
// @Summary      헬스 체크
// @Tags         System
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Version godoc
// @Summary      빌드 정보
// @Tags         System
// @Produce      json
// @Success      200 {object} handler.VersionInfo
// @Router       /version [get]
func (h *Handler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, h.version)
}
