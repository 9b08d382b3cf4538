package handler

import (
	"errors"
	"net/http"
	"strings"

	"AJY_Stylist/internal/middleware"
	"AJY_Stylist/internal/models"
	"AJY_Stylist/internal/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// resolveEmail 토큰이 있으면 토큰 이메일과 일치해야 함, 요청 이메일이 비어 있으면 토큰 이메일 사용
func resolveEmail(c *gin.Context, email string) (string, bool) {
	email = strings.TrimSpace(email)
	tokenEmail := c.GetString(middleware.ContextEmail)
	if tokenEmail == "" {
		return email, true
	}
	if email == "" {
		return tokenEmail, true
	}
	if !strings.EqualFold(email, tokenEmail) {
		errorJSON(c, http.StatusForbidden, "Forbidden")
		return "", false
	}
	return email, true
}

// Subscription godoc
// @Summary      구독 상태 조회
// @Description  이메일에 해당하는 Polar 고객의 활성 구독 여부를 반환합니다. 조회 실패 시 false 를 반환합니다.
// @Tags         Subscription
// @Produce      json
// @Security     BearerAuth
// @Param        email query string false "조회할 이메일 (토큰 사용 시 생략 가능)"
// @Success      200 {object} models.SubscriptionResponse
// @Failure      400 {object} models.ErrorResponse "이메일 누락"
// @Failure      401 {object} models.ErrorResponse "유효하지 않은 토큰"
// @Failure      403 {object} models.ErrorResponse "토큰 이메일 불일치"
// @Router       /api/subscription [get]
func (h *Handler) Subscription(c *gin.Context) {
	email, ok := resolveEmail(c, c.Query("email"))
	if !ok {
		return
	}
	if email == "" {
		errorJSON(c, http.StatusBadRequest, "Email required")
		return
	}

	if !h.payments.Configured() {
		c.JSON(http.StatusOK, models.SubscriptionResponse{HasActiveSubscription: false})
		return
	}

	ctx := c.Request.Context()
	if active, hit := h.cache.Get(ctx, email); hit {
		c.JSON(http.StatusOK, models.SubscriptionResponse{HasActiveSubscription: active})
		return
	}

	active, err := h.payments.HasActiveSubscription(ctx, email)
	if err != nil {
		h.logger.Warn("Subscription(): lookup failed", zap.Error(err))
		c.JSON(http.StatusOK, models.SubscriptionResponse{HasActiveSubscription: false})
		return
	}
	h.cache.Set(ctx, email, active)

	c.JSON(http.StatusOK, models.SubscriptionResponse{HasActiveSubscription: active})
}

// CancelSubscription godoc
// @Summary      구독 해지
// @Description  첫 번째 활성 구독을 현재 결제 기간 종료 시 해지하도록 예약합니다.
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.EmailRequest true "해지할 계정 이메일"
// @Success      200 {object} models.SuccessResponse
// @Failure      400 {object} models.ErrorResponse "이메일 누락"
// @Failure      404 {object} models.ErrorResponse "고객 또는 활성 구독 없음"
// @Failure      500 {object} models.ErrorResponse "Polar API 오류"
// @Failure      503 {object} models.ErrorResponse "결제 미설정"
// @Router       /api/cancel-subscription [post]
func (h *Handler) CancelSubscription(c *gin.Context) {
	var req models.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid request")
		return
	}
	email, ok := resolveEmail(c, req.Email)
	if !ok {
		return
	}
	if email == "" {
		errorJSON(c, http.StatusBadRequest, "Email required")
		return
	}

	if !h.payments.Configured() {
		errorJSON(c, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	ctx := c.Request.Context()
	customerID, err := h.payments.FindCustomerID(ctx, email)
	if errors.Is(err, payment.ErrCustomerNotFound) {
		errorJSON(c, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		h.logger.Error("CancelSubscription(): customer lookup failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "Failed to find customer")
		return
	}

	subs, err := h.payments.ActiveSubscriptions(ctx, customerID)
	if err != nil {
		h.logger.Error("CancelSubscription(): customer state failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "Failed to get subscription")
		return
	}
	if len(subs) == 0 {
		errorJSON(c, http.StatusNotFound, "No active subscription")
		return
	}

	if err := h.payments.CancelAtPeriodEnd(ctx, subs[0].ID); err != nil {
		h.logger.Error("CancelSubscription(): cancel failed", zap.String("subscription_id", subs[0].ID), zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "Failed to cancel subscription")
		return
	}
	h.cache.Invalidate(ctx, email)

	h.logger.Info("CancelSubscription(): subscription set to cancel at period end", zap.String("subscription_id", subs[0].ID))
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
