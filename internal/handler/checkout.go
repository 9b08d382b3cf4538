package handler

import (
	"errors"
	"io"
	"net/http"

	"AJY_Stylist/internal/locale"
	"AJY_Stylist/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Checkout godoc
// @Summary      결제 세션 생성
// @Description  Polar 체크아웃 세션을 생성합니다. embed_origin 을 지정하면 임베드 결제창용 세션이 생성됩니다.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body models.CheckoutRequest true "체크아웃 요청"
// @Success      200 {object} models.CheckoutResponse
// @Failure      400 {object} models.ErrorResponse "잘못된 요청"
// @Failure      500 {object} models.ErrorResponse "결제 미설정"
// @Failure      502 {object} models.ErrorResponse "Polar API 오류"
// @Router       /api/checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	// 본문 없는 요청은 기본값으로 처리
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		errorJSON(c, http.StatusBadRequest, locale.MessagesFor(requestLocale(c)).InvalidRequest)
		return
	}
	msg := locale.MessagesFor(locale.Parse(req.Locale))

	if !h.payments.Configured() {
		errorJSON(c, http.StatusInternalServerError, msg.CheckoutNotConfigured)
		return
	}

	checkout, err := h.payments.CreateCheckout(c.Request.Context(), req.EmbedOrigin)
	if err != nil {
		h.logger.Error("Checkout(): Polar API error", zap.Error(err))
		errorJSON(c, http.StatusBadGateway, msg.CheckoutFailed)
		return
	}

	c.JSON(http.StatusOK, models.CheckoutResponse{
		URL:          checkout.URL,
		ID:           checkout.ID,
		ClientSecret: checkout.ClientSecret,
	})
}
