package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"AJY_Stylist/internal/auth"
	"AJY_Stylist/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signedToken(t *testing.T, secret string) string {
	t.Helper()
	claims := &auth.Claims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authRouter(optional bool) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(auth.NewValidator("secret"), optional), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString(ContextEmail), "userID": c.GetString(ContextUserID)})
	})
	return r
}

func doGet(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_Required(t *testing.T) {
	r := authRouter(false)

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doGet(r, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doGet(r, "Bearer "+signedToken(t, "wrong"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")

	w = doGet(r, "Bearer "+signedToken(t, "secret"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"user@example.com","userID":"user-1"}`, w.Body.String())
}

func TestAuthMiddleware_RequiredWithoutSecret(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware(auth.NewValidator(""), false), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := doGet(r, "Bearer "+signedToken(t, "secret"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"Authentication not available"}`, w.Body.String())

	w = doGet(r, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAuthMiddleware_Optional(t *testing.T) {
	r := authRouter(true)

	w := doGet(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"","userID":""}`, w.Body.String())

	w = doGet(r, "Bearer "+signedToken(t, "wrong"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(config.RateLimitConfig{Enabled: true, Interval: time.Hour, Burst: 2, Expire: time.Hour}))
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusNoContent, doGet(r, "").Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Accept-Language", "en-US")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestRateLimit_Exempt(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(config.RateLimitConfig{Enabled: true, Interval: time.Hour, Burst: 1, Expire: time.Hour},
		func(c *gin.Context) bool { return c.GetHeader("X-Paid") == "1" },
	))
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, doGet(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet(r, "").Code)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("X-Paid", "1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRateLimit_SeparateBucketsPerMiddleware(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Interval: time.Hour, Burst: 1, Expire: time.Hour}
	r := gin.New()
	r.GET("/a", RateLimit(cfg), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/b", RateLimit(cfg), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	get := func(path string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Code
	}
	assert.Equal(t, http.StatusNoContent, get("/a"))
	assert.Equal(t, http.StatusTooManyRequests, get("/a"))
	assert.Equal(t, http.StatusNoContent, get("/b"))
}

func TestRateLimit_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(config.RateLimitConfig{Enabled: false, Interval: time.Hour, Burst: 1}))
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNoContent, doGet(r, "").Code)
	}
}
