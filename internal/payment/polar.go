/**
* Name: 			polar.go
* Description: 		Polar 결제 API 클라이언트 (체크아웃, 주문, 환불, 구독)
* Workflow: 		체크아웃 생성 -> (분석 실패 시) 주문 조회 재시도 -> 환불
*					고객 조회 -> 고객 상태(활성 구독) -> 구독 해지 예약
 */

package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"AJY_Stylist/internal/config"
	"AJY_Stylist/internal/metrics"

	"go.uber.org/zap"
)

var (
	ErrNotConfigured    = errors.New("POLAR_ACCESS_TOKEN not set")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrOrderNotFound    = errors.New("order not found for checkout")
)

// APIError Polar가 2xx 이외의 상태를 반환한 경우
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Polar API error (%d): %s", e.StatusCode, e.Body)
}

type Checkout struct {
	URL          string `json:"url"`
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// CheckoutSession 결제 완료 후 조회한 체크아웃 정보
type CheckoutSession struct {
	CustomerEmail string `json:"customer_email"`
	TotalAmount   int64  `json:"total_amount"`
}

type Order struct {
	ID          string `json:"id"`
	TotalAmount int64  `json:"total_amount"`
}

type Subscription struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type Client struct {
	accessToken string
	baseURL     string
	productID   string
	maxAttempts int
	backoff     time.Duration
	http        *http.Client
	logger      *zap.Logger
}

func NewClient(cfg config.PolarConfig, logger *zap.Logger) *Client {
	maxAttempts := cfg.RefundMaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Client{
		accessToken: cfg.AccessToken,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		productID:   cfg.ProductID,
		maxAttempts: maxAttempts,
		backoff:     cfg.RefundBackoff,
		http:        &http.Client{Timeout: 15 * time.Second},
		logger:      logger,
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.accessToken != ""
}

// CreateCheckout 상품 1개짜리 체크아웃 세션 생성 (embedOrigin은 임베드 결제창용, 선택)
func (c *Client) CreateCheckout(ctx context.Context, embedOrigin string) (*Checkout, error) {
	body := map[string]any{"products": []string{c.productID}}
	if embedOrigin != "" {
		body["embed_origin"] = embedOrigin
	}

	var out Checkout
	err := c.call(ctx, http.MethodPost, "/v1/checkouts/", body, &out)
	metrics.ObserveUpstream("polar", "create_checkout", err)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCheckout(ctx context.Context, checkoutID string) (*CheckoutSession, error) {
	var out struct {
		CustomerEmail *string `json:"customer_email"`
		TotalAmount   *int64  `json:"total_amount"`
	}
	err := c.call(ctx, http.MethodGet, "/v1/checkouts/"+url.PathEscape(checkoutID), nil, &out)
	metrics.ObserveUpstream("polar", "get_checkout", err)
	if err != nil {
		return nil, err
	}

	session := &CheckoutSession{}
	if out.CustomerEmail != nil {
		session.CustomerEmail = *out.CustomerEmail
	}
	if out.TotalAmount != nil {
		session.TotalAmount = *out.TotalAmount
	}
	return session, nil
}

// FindOrderByCheckout 체크아웃에 대응하는 주문 조회
// 결제 직후에는 주문이 아직 생성되지 않았을 수 있어 backoff * attempt 간격으로 재시도
func (c *Client) FindOrderByCheckout(ctx context.Context, checkoutID string) (*Order, error) {
	path := "/v1/orders/?checkout_id=" + url.QueryEscape(checkoutID) + "&limit=1"

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}

		var out struct {
			Items []Order `json:"items"`
		}
		err := c.call(ctx, http.MethodGet, path, nil, &out)
		metrics.ObserveUpstream("polar", "list_orders", err)
		if err != nil {
			c.logger.Warn("FindOrderByCheckout(): lookup failed, retrying",
				zap.Int("attempt", attempt+1), zap.Error(err))
			continue
		}
		if len(out.Items) > 0 {
			return &out.Items[0], nil
		}
		c.logger.Debug("FindOrderByCheckout(): order not created yet", zap.Int("attempt", attempt+1))
	}
	return nil, ErrOrderNotFound
}

func (c *Client) IssueRefund(ctx context.Context, orderID string, amount int64, comment string) error {
	body := map[string]any{
		"order_id":        orderID,
		"reason":          "service_disruption",
		"amount":          amount,
		"comment":         comment,
		"revoke_benefits": false,
	}
	err := c.call(ctx, http.MethodPost, "/v1/refunds/", body, nil)
	metrics.ObserveUpstream("polar", "create_refund", err)
	return err
}

// RefundCheckout 실패한 유료 분석 건 환불
// 환불 금액은 체크아웃 금액, 없으면 주문 금액
func (c *Client) RefundCheckout(ctx context.Context, checkoutID string, amount int64, comment string) error {
	order, err := c.FindOrderByCheckout(ctx, checkoutID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			metrics.ObserveRefund("order_not_found")
		} else {
			metrics.ObserveRefund("failed")
		}
		return err
	}

	if amount <= 0 {
		amount = order.TotalAmount
	}
	if err := c.IssueRefund(ctx, order.ID, amount, comment); err != nil {
		metrics.ObserveRefund("failed")
		return err
	}

	metrics.ObserveRefund("refunded")
	c.logger.Info("RefundCheckout(): refund issued",
		zap.String("checkout_id", checkoutID), zap.String("order_id", order.ID), zap.Int64("amount", amount))
	return nil
}

func (c *Client) FindCustomerID(ctx context.Context, email string) (string, error) {
	var out struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	err := c.call(ctx, http.MethodGet, "/v1/customers/?email="+url.QueryEscape(email)+"&limit=1", nil, &out)
	metrics.ObserveUpstream("polar", "list_customers", err)
	if err != nil {
		return "", err
	}
	if len(out.Items) == 0 {
		return "", ErrCustomerNotFound
	}
	return out.Items[0].ID, nil
}

func (c *Client) ActiveSubscriptions(ctx context.Context, customerID string) ([]Subscription, error) {
	var out struct {
		ActiveSubscriptions []Subscription `json:"active_subscriptions"`
	}
	err := c.call(ctx, http.MethodGet, "/v1/customers/"+url.PathEscape(customerID)+"/state", nil, &out)
	metrics.ObserveUpstream("polar", "customer_state", err)
	if err != nil {
		return nil, err
	}
	return out.ActiveSubscriptions, nil
}

// HasActiveSubscription 고객이 없으면 구독 없음으로 판단
func (c *Client) HasActiveSubscription(ctx context.Context, email string) (bool, error) {
	customerID, err := c.FindCustomerID(ctx, email)
	if errors.Is(err, ErrCustomerNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	subs, err := c.ActiveSubscriptions(ctx, customerID)
	if err != nil {
		return false, err
	}
	return len(subs) > 0, nil
}

// CancelAtPeriodEnd 현재 결제 기간 종료 시 구독 해지
func (c *Client) CancelAtPeriodEnd(ctx context.Context, subscriptionID string) error {
	body := map[string]any{"cancel_at_period_end": true}
	err := c.call(ctx, http.MethodPatch, "/v1/subscriptions/"+url.PathEscape(subscriptionID), body, nil)
	metrics.ObserveUpstream("polar", "cancel_subscription", err)
	return err
}

func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
