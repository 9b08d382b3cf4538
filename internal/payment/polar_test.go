package payment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"AJY_Stylist/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewClient(config.PolarConfig{
		AccessToken:       "polar-token",
		BaseURL:           srv.URL,
		ProductID:         "product-1",
		RefundMaxAttempts: 4,
		RefundBackoff:     time.Millisecond,
	}, zap.NewNop())
}

func TestCreateCheckout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/checkouts/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer polar-token", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []any{"product-1"}, body["products"])
		assert.Equal(t, "https://ajy.example.com", body["embed_origin"])

		_, _ = io.WriteString(w, `{"url":"https://polar.sh/c/1","id":"chk_1","client_secret":"sec"}`)
	})
	client := newTestClient(t, mux)

	checkout, err := client.CreateCheckout(t.Context(), "https://ajy.example.com")
	require.NoError(t, err)
	assert.Equal(t, &Checkout{URL: "https://polar.sh/c/1", ID: "chk_1", ClientSecret: "sec"}, checkout)
}

func TestCreateCheckout_OmitsEmptyEmbedOrigin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/checkouts/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, ok := body["embed_origin"]
		assert.False(t, ok)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail":"bad product"}`)
	})
	client := newTestClient(t, mux)

	_, err := client.CreateCheckout(t.Context(), "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
}

func TestGetCheckout_NullEmail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/checkouts/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "chk_1", r.PathValue("id"))
		_, _ = io.WriteString(w, `{"customer_email":null,"total_amount":990}`)
	})
	client := newTestClient(t, mux)

	session, err := client.GetCheckout(t.Context(), "chk_1")
	require.NoError(t, err)
	assert.Empty(t, session.CustomerEmail)
	assert.EqualValues(t, 990, session.TotalAmount)
}

func TestFindOrderByCheckout_RetriesUntilOrderExists(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/orders/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "chk_1", r.URL.Query().Get("checkout_id"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusInternalServerError)
		case 2:
			_, _ = io.WriteString(w, `{"items":[]}`)
		default:
			_, _ = io.WriteString(w, `{"items":[{"id":"ord_1","total_amount":990}]}`)
		}
	})
	client := newTestClient(t, mux)

	order, err := client.FindOrderByCheckout(t.Context(), "chk_1")
	require.NoError(t, err)
	assert.Equal(t, "ord_1", order.ID)
	assert.EqualValues(t, 3, calls.Load())
}

func TestFindOrderByCheckout_Exhausted(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/orders/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `{"items":[]}`)
	})
	client := newTestClient(t, mux)

	_, err := client.FindOrderByCheckout(t.Context(), "chk_1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.EqualValues(t, 4, calls.Load())
}

func TestFindOrderByCheckout_ContextCancelled(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/orders/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"items":[]}`)
	})
	client := newTestClient(t, mux)
	client.backoff = time.Hour

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FindOrderByCheckout(ctx, "chk_1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRefundCheckout(t *testing.T) {
	var refund map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/orders/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"items":[{"id":"ord_1","total_amount":1500}]}`)
	})
	mux.HandleFunc("POST /v1/refunds/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&refund))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"ref_1"}`)
	})
	client := newTestClient(t, mux)

	require.NoError(t, client.RefundCheckout(t.Context(), "chk_1", 990, "analysis failed"))
	assert.Equal(t, "ord_1", refund["order_id"])
	assert.Equal(t, "service_disruption", refund["reason"])
	assert.EqualValues(t, 990, refund["amount"])
	assert.Equal(t, "analysis failed", refund["comment"])
	assert.Equal(t, false, refund["revoke_benefits"])

	// 체크아웃 금액이 없으면 주문 금액으로 환불
	require.NoError(t, client.RefundCheckout(t.Context(), "chk_1", 0, "analysis failed"))
	assert.EqualValues(t, 1500, refund["amount"])
}

func TestHasActiveSubscription(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/customers/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("email") == "known@example.com" {
			_, _ = io.WriteString(w, `{"items":[{"id":"cus_1"}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"items":[]}`)
	})
	mux.HandleFunc("GET /v1/customers/{id}/state", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cus_1", r.PathValue("id"))
		_, _ = io.WriteString(w, `{"active_subscriptions":[{"id":"sub_1","status":"active"}]}`)
	})
	client := newTestClient(t, mux)

	active, err := client.HasActiveSubscription(t.Context(), "known@example.com")
	require.NoError(t, err)
	assert.True(t, active)

	active, err = client.HasActiveSubscription(t.Context(), "unknown@example.com")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestCancelAtPeriodEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /v1/subscriptions/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sub_1", r.PathValue("id"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["cancel_at_period_end"])
		_, _ = io.WriteString(w, `{"id":"sub_1"}`)
	})
	client := newTestClient(t, mux)

	require.NoError(t, client.CancelAtPeriodEnd(t.Context(), "sub_1"))
}

func TestNotConfigured(t *testing.T) {
	client := NewClient(config.PolarConfig{BaseURL: "http://127.0.0.1:0"}, zap.NewNop())
	assert.False(t, client.Configured())

	_, err := client.CreateCheckout(t.Context(), "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
