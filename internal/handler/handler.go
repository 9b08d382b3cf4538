/**
* Name: 			handler.go
* Description: 		Gin HTTP 핸들러 공통 의존성 및 응답 헬퍼
 */
package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"AJY_Stylist/internal/auth"
	"AJY_Stylist/internal/cache"
	"AJY_Stylist/internal/config"
	"AJY_Stylist/internal/locale"
	"AJY_Stylist/internal/models"
	"AJY_Stylist/internal/payment"
	"AJY_Stylist/internal/stylist"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Analyzer interface {
	Analyze(ctx context.Context, req stylist.Request, progress stylist.ProgressFunc) (*stylist.Result, error)
}

type ImageGenerator interface {
	HasAPIKey() bool
	EditImage(ctx context.Context, photo, stylePrompt string) (string, error)
}

type Payments interface {
	Configured() bool
	CreateCheckout(ctx context.Context, embedOrigin string) (*payment.Checkout, error)
	GetCheckout(ctx context.Context, checkoutID string) (*payment.CheckoutSession, error)
	HasActiveSubscription(ctx context.Context, email string) (bool, error)
	FindCustomerID(ctx context.Context, email string) (string, error)
	ActiveSubscriptions(ctx context.Context, customerID string) ([]payment.Subscription, error)
	CancelAtPeriodEnd(ctx context.Context, subscriptionID string) error
}

type Mailer interface {
	Configured() bool
	SendReport(ctx context.Context, to, report string, l locale.Locale, styleImage string) error
}

type HistoryStore interface {
	ListAnalyses(ctx context.Context, emailHash string, limit int) ([]models.Analysis, error)
	GetAnalysis(ctx context.Context, id, emailHash string) (*models.Analysis, error)
}

type Speech interface {
	Synthesize(ctx context.Context, report string, l locale.Locale) ([]byte, error)
}

// 빌드 정보 (main 에서 ldflags 로 주입)
type VersionInfo struct {
	Version   string `json:"version" example:"1.0.0"`
	Commit    string `json:"commit" example:"a1b2c3d"`
	BuildTime string `json:"buildTime" example:"2026-01-01T00:00:00Z"`
}

// Deps History, Speech, Cache 는 nil 가능
type Deps struct {
	Analyzer  Analyzer
	Images    ImageGenerator
	Payments  Payments
	Mailer    Mailer
	History   HistoryStore
	Speech    Speech
	Cache     *cache.SubscriptionCache
	Auth      *auth.Validator
	RateLimit config.RateLimitConfig
	// nil 이면 프록시 헤더를 신뢰하지 않음
	TrustedProxies []string
	Version        VersionInfo
	Logger         *zap.Logger
}

type Handler struct {
	analyzer Analyzer
	images   ImageGenerator
	payments Payments
	mailer   Mailer
	history  HistoryStore
	speech   Speech
	cache    *cache.SubscriptionCache
	auth     *auth.Validator
	limits   config.RateLimitConfig
	proxies  []string
	version  VersionInfo
	logger   *zap.Logger

	// 진행 중인 WebSocket 분석 세션 (hijack 된 연결은 http.Server.Shutdown 이 기다리지 않음)
	sessions sync.WaitGroup
}

func New(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		analyzer: d.Analyzer,
		images:   d.Images,
		payments: d.Payments,
		mailer:   d.Mailer,
		history:  d.History,
		speech:   d.Speech,
		cache:    d.Cache,
		auth:     d.Auth,
		limits:   d.RateLimit,
		proxies:  d.TrustedProxies,
		version:  d.Version,
		logger:   logger,
	}
}

// Wait 진행 중인 WebSocket 분석 세션이 모두 끝날 때까지 대기
func (h *Handler) Wait() {
	h.sessions.Wait()
}

func errorJSON(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{Error: message})
}

// requestLocale 본문을 읽기 전에는 Accept-Language 기준
func requestLocale(c *gin.Context) locale.Locale {
	return locale.FromAcceptLanguage(c.GetHeader("Accept-Language"))
}

// analyzeError 분석 실패 응답 (refunded 포함)
func (h *Handler) analyzeError(c *gin.Context, err error, l locale.Locale) {
	var aerr *stylist.Error
	if errors.As(err, &aerr) {
		refunded := aerr.Refunded
		c.JSON(aerr.Status, models.ErrorResponse{Error: aerr.Message, Refunded: &refunded})
		return
	}
	h.logger.Error("analyzeError(): unexpected error", zap.Error(err))
	refunded := false
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: locale.MessagesFor(l).ServerError, Refunded: &refunded})
}

func toStylistRequest(req models.AnalyzeRequest, authEmail string) stylist.Request {
	return stylist.Request{
		Photo:      req.Photo,
		Height:     string(req.Height),
		Weight:     string(req.Weight),
		Gender:     req.Gender,
		Locale:     req.Locale,
		CheckoutID: req.CheckoutID,
		UserEmail:  req.UserEmail,
		AuthEmail:  authEmail,
	}
}
