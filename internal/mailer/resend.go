/**
* Name: 			resend.go
* Description: 		Resend 이메일 발송 클라이언트
* Workflow: 		리포트 마크다운 -> HTML 템플릿 -> POST /emails
 */

package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"AJY_Stylist/internal/config"
	"AJY_Stylist/internal/locale"
	"AJY_Stylist/internal/metrics"

	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("RESEND_API_KEY not set")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail 간단한 형식 검사 (local@domain.tld)
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// APIError Resend가 2xx 이외의 상태를 반환한 경우
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Resend API error (%d): %s", e.StatusCode, e.Body)
}

type Client struct {
	apiKey  string
	baseURL string
	from    string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(cfg config.ResendConfig, logger *zap.Logger) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		from:    cfg.From,
		http:    &http.Client{Timeout: 20 * time.Second},
		logger:  logger,
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendReport 스타일 리포트(및 선택적 스타일 이미지)를 이메일로 발송
func (c *Client) SendReport(ctx context.Context, to, report string, l locale.Locale, styleImage string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	html, err := BuildEmailHTML(report, l, styleImage)
	if err != nil {
		return fmt.Errorf("failed to build email html: %w", err)
	}

	body, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{to},
		Subject: Subject(l),
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	err = c.do(req)
	metrics.ObserveUpstream("resend", "send_email", err)
	if err != nil {
		return err
	}
	c.logger.Info("SendReport(): email sent", zap.String("locale", string(l)), zap.Bool("with_image", styleImage != ""))
	return nil
}

func (c *Client) do(req *http.Request) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}
