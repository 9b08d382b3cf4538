/**
* Name: 			analyzer.go
* Description: 		사진/체형 분석 요청 처리 (리포트 + 스타일 이미지 생성, 실패 시 환불, 이메일 발송)
* Workflow: 		입력 검증 -> 체크아웃 조회 -> 텍스트/이미지 병렬 생성 -> (실패) 환불
*					-> (성공) 이메일 백그라운드 발송 -> 이력 저장
 */

package stylist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"AJY_Stylist/internal/llm"
	"AJY_Stylist/internal/locale"
	"AJY_Stylist/internal/models"
	"AJY_Stylist/internal/payment"
	"AJY_Stylist/internal/prompt"
	"AJY_Stylist/internal/storage"

	"go.uber.org/zap"
)

type ReportGenerator interface {
	HasAPIKey() bool
	GenerateReport(ctx context.Context, systemPrompt, userText, photoURL string) (string, error)
	EditImage(ctx context.Context, photo, stylePrompt string) (string, error)
}

type Payments interface {
	Configured() bool
	GetCheckout(ctx context.Context, checkoutID string) (*payment.CheckoutSession, error)
	RefundCheckout(ctx context.Context, checkoutID string, amount int64, comment string) error
}

type Mailer interface {
	Configured() bool
	SendReport(ctx context.Context, to, report string, l locale.Locale, styleImage string) error
}

type HistoryStore interface {
	SaveAnalysis(ctx context.Context, a *models.Analysis) error
}

// Stage 진행 상황 (웹소켓 클라이언트에 전달)
type Stage string

const (
	StagePayment    Stage = "payment"
	StageGenerating Stage = "generating"
	StageRefunding  Stage = "refunding"
	StageEmailing   Stage = "emailing"
	StageDone       Stage = "done"
)

type ProgressFunc func(Stage)

type Request struct {
	Photo      string
	Height     string
	Weight     string
	Gender     string
	Locale     string
	CheckoutID string
	UserEmail  string
	// 인증된 사용자 이메일 (체크아웃/요청 본문에 이메일이 없을 때 사용)
	AuthEmail string
}

type Result struct {
	Report     string
	StyleImage string
}

// Error 클라이언트에 반환할 상태 코드와 지역화된 메시지
type Error struct {
	Status   int
	Message  string
	Refunded bool
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Options struct {
	Timeout       time.Duration
	EmailTimeout  time.Duration
	RefundTimeout time.Duration
}

type Analyzer struct {
	llm      ReportGenerator
	payments Payments
	mailer   Mailer
	store    HistoryStore
	opts     Options
	logger   *zap.Logger

	background sync.WaitGroup
}

// payments, mailer, store 는 nil 가능
func NewAnalyzer(gen ReportGenerator, payments Payments, mailer Mailer, store HistoryStore, opts Options, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		llm:      gen,
		payments: payments,
		mailer:   mailer,
		store:    store,
		opts:     opts,
		logger:   logger,
	}
}

// Analyze progress 는 호출한 고루틴에서만 호출됨
func (a *Analyzer) Analyze(ctx context.Context, req Request, progress ProgressFunc) (*Result, error) {
	notify := func(s Stage) {
		if progress != nil {
			progress(s)
		}
	}

	l := locale.Parse(req.Locale)
	msg := locale.MessagesFor(l)

	if req.Photo == "" || req.Height == "" || req.Weight == "" || req.Gender == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: msg.MissingFields}
	}
	if !a.llm.HasAPIKey() {
		return nil, &Error{Status: http.StatusInternalServerError, Message: msg.NoAPIKey, Err: llm.ErrMissingAPIKey}
	}

	paid := req.CheckoutID != "" && a.payments != nil && a.payments.Configured()

	var email string
	var amount int64
	if paid {
		notify(StagePayment)
		session, err := a.payments.GetCheckout(ctx, req.CheckoutID)
		if err != nil {
			a.logger.Warn("Analyze(): checkout lookup failed", zap.String("checkout_id", req.CheckoutID), zap.Error(err))
		} else {
			email = session.CustomerEmail
			amount = session.TotalAmount
		}
	}
	if email == "" {
		email = strings.TrimSpace(req.UserEmail)
	}
	if email == "" {
		email = req.AuthEmail
	}

	notify(StageGenerating)
	start := time.Now()
	report, styleImage, err := a.generate(ctx, req, l)
	if err != nil {
		aerr := classify(msg, err)
		a.logger.Error("Analyze(): report generation failed",
			zap.Int("status", aerr.Status), zap.Duration("cost", time.Since(start)), zap.Error(err))

		if paid {
			notify(StageRefunding)
			aerr.Refunded = a.refund(ctx, req.CheckoutID, amount)
		}
		a.record(ctx, email, req, l, &models.Analysis{
			Status:   models.StatusFailed,
			Refunded: aerr.Refunded,
			Error:    err.Error(),
		})
		return nil, aerr
	}
	a.logger.Info("Analyze(): report generated",
		zap.Duration("cost", time.Since(start)), zap.Bool("style_image", styleImage != ""))

	if email != "" && a.mailer != nil && a.mailer.Configured() {
		notify(StageEmailing)
		a.sendEmailAsync(email, report, l, styleImage)
	}

	a.record(ctx, email, req, l, &models.Analysis{
		Status:        models.StatusSucceeded,
		Report:        report,
		HasStyleImage: styleImage != "",
	})

	notify(StageDone)
	return &Result{Report: report, StyleImage: styleImage}, nil
}

// generate 텍스트와 이미지를 동시에 요청, 이미지 실패는 무시
func (a *Analyzer) generate(ctx context.Context, req Request, l locale.Locale) (string, string, error) {
	genCtx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	var (
		wg         sync.WaitGroup
		report     string
		textErr    error
		styleImage string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		report, textErr = a.llm.GenerateReport(genCtx,
			prompt.AnalysisPrompt(l, req.Gender, req.Height, req.Weight),
			prompt.UserMessage(l, req.Gender, req.Height, req.Weight),
			req.Photo,
		)
	}()
	go func() {
		defer wg.Done()
		img, err := a.llm.EditImage(genCtx, req.Photo, prompt.StylePrompt())
		if err != nil {
			a.logger.Warn("generate(): style image failed", zap.Error(err))
			return
		}
		styleImage = img
	}()
	wg.Wait()

	return report, styleImage, textErr
}

func classify(msg locale.Messages, err error) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Status: http.StatusGatewayTimeout, Message: msg.AnalysisTimeout, Err: err}
	case errors.Is(err, llm.ErrEmptyReport):
		return &Error{Status: http.StatusInternalServerError, Message: msg.ReportFailed, Err: err}
	default:
		return &Error{Status: http.StatusBadGateway, Message: msg.AnalysisFailed, Err: err}
	}
}

// refund 요청이 취소되어도 환불은 끝까지 진행
func (a *Analyzer) refund(ctx context.Context, checkoutID string, amount int64) bool {
	refundCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.opts.RefundTimeout)
	defer cancel()

	if err := a.payments.RefundCheckout(refundCtx, checkoutID, amount, "AI analysis failed"); err != nil {
		a.logger.Error("refund(): refund failed", zap.String("checkout_id", checkoutID), zap.Error(err))
		return false
	}
	return true
}

func (a *Analyzer) sendEmailAsync(email, report string, l locale.Locale, styleImage string) {
	a.background.Add(1)
	go func() {
		defer a.background.Done()
		ctx, cancel := context.WithTimeout(context.Background(), a.opts.EmailTimeout)
		defer cancel()

		if err := a.mailer.SendReport(ctx, email, report, l, styleImage); err != nil {
			a.logger.Error("sendEmailAsync(): email send failed", zap.Error(err))
		}
	}()
}

func (a *Analyzer) record(ctx context.Context, email string, req Request, l locale.Locale, entry *models.Analysis) {
	if a.store == nil || email == "" {
		return
	}
	entry.EmailHash = storage.EmailHash(email)
	entry.Locale = string(l)
	entry.Gender = req.Gender
	entry.Height = req.Height
	entry.Weight = req.Weight
	entry.CheckoutID = req.CheckoutID

	if err := a.store.SaveAnalysis(context.WithoutCancel(ctx), entry); err != nil {
		a.logger.Warn("record(): failed to save analysis", zap.Error(err))
	}
}

// Wait 백그라운드 이메일 발송 완료 대기 (서버 종료 시)
func (a *Analyzer) Wait() {
	a.background.Wait()
}
