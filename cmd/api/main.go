/**
* Name: 			main.go
* Description: 		AJY Stylist API 서버 진입점
* Workflow: 		설정 로딩 -> 외부 클라이언트 구성 -> 라우터 구성 -> 서버 실행 -> 종료 신호 시 정리
 */

// @title           AJY Stylist API
// @version         1.0
// @description     AI 패션 스타일링 리포트 API (OpenAI, Polar, Resend)
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Supabase 액세스 토큰 (Bearer {token})
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"AJY_Stylist/internal/auth"
	"AJY_Stylist/internal/cache"
	"AJY_Stylist/internal/config"
	"AJY_Stylist/internal/handler"
	"AJY_Stylist/internal/llm"
	"AJY_Stylist/internal/logger"
	"AJY_Stylist/internal/mailer"
	"AJY_Stylist/internal/payment"
	"AJY_Stylist/internal/storage"
	"AJY_Stylist/internal/stylist"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// -ldflags "-X main.version=... -X main.commit=... -X main.buildTime=..."
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.New(cfg.Server.Mode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 이력 저장소 (실패 시 이력 기능 없이 동작)
	var (
		store        *storage.Store
		history      handler.HistoryStore
		historyStore stylist.HistoryStore
	)
	if cfg.Database.Path != "" {
		store, err = storage.Open(cfg.Database.Path)
		if err != nil {
			log.Error("failed to open database, history disabled", zap.String("path", cfg.Database.Path), zap.Error(err))
		} else {
			history, historyStore = store, store
		}
	}

	subCache, err := cache.New(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn("redis unavailable, subscription cache disabled", zap.Error(err))
		subCache = nil
	}

	llmClient := llm.NewClient(cfg.OpenAI, cfg.Image, log)
	polar := payment.NewClient(cfg.Polar, log)
	resend := mailer.NewClient(cfg.Resend, log)

	var (
		tts    *llm.TTSClient
		speech handler.Speech
	)
	tts, err = llm.NewTTSClient(ctx, cfg.TTS, log)
	switch {
	case errors.Is(err, llm.ErrTTSNotConfigured):
		log.Info("TTS credentials not set, report audio disabled")
	case err != nil:
		log.Warn("failed to create TTS client, report audio disabled", zap.Error(err))
	default:
		speech = tts
	}

	if !llmClient.HasAPIKey() {
		log.Warn("OPENAI_API_KEY not set")
	}
	if !polar.Configured() {
		log.Warn("POLAR_ACCESS_TOKEN not set, payments disabled")
	}
	if !resend.Configured() {
		log.Warn("RESEND_API_KEY not set, email disabled")
	}

	analyzer := stylist.NewAnalyzer(llmClient, polar, resend, historyStore, stylist.Options{
		Timeout:       cfg.Analyze.Timeout,
		EmailTimeout:  cfg.Analyze.EmailTimeout,
		RefundTimeout: cfg.Polar.RefundTimeout,
	}, log)

	h := handler.New(handler.Deps{
		Analyzer:       analyzer,
		Images:         llmClient,
		Payments:       polar,
		Mailer:         resend,
		History:        history,
		Speech:         speech,
		Cache:          subCache,
		Auth:           auth.NewValidator(cfg.Auth.SupabaseJWTSecret),
		RateLimit:      cfg.RateLimit,
		TrustedProxies: cfg.Server.TrustedProxies,
		Version:        handler.VersionInfo{Version: version, Commit: commit, BuildTime: buildTime},
		Logger:         log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      handler.NewRouter(h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server started", zap.String("addr", cfg.Server.Port), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	// Shutdown 은 hijack 된 WebSocket 연결을 기다리지 않으므로 분석 세션 종료를 별도로 대기
	h.Wait()
	// 백그라운드 이메일 발송 완료 대기
	analyzer.Wait()

	if store != nil {
		if err := store.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}
	if err := subCache.Close(); err != nil {
		log.Warn("failed to close redis", zap.Error(err))
	}
	if tts != nil {
		if err := tts.Close(); err != nil {
			log.Warn("failed to close TTS client", zap.Error(err))
		}
	}
}
