package handler

import (
	"net/http"
	"strings"

	"AJY_Stylist/internal/locale"
	"AJY_Stylist/internal/mailer"
	"AJY_Stylist/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SendEmail godoc
// @Summary      리포트 이메일 재발송
// @Description  리포트(마크다운)와 스타일 이미지를 HTML 이메일로 발송합니다.
// @Tags         Email
// @Accept       json
// @Produce      json
// @Param        request body models.SendEmailRequest true "이메일 요청"
// @Success      200 {object} models.SuccessResponse
// @Failure      400 {object} models.ErrorResponse "필수 입력 누락 또는 잘못된 이메일"
// @Failure      500 {object} models.ErrorResponse "이메일 서비스 미설정"
// @Failure      502 {object} models.ErrorResponse "Resend 오류"
// @Router       /api/send-email [post]
func (h *Handler) SendEmail(c *gin.Context) {
	var req models.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, locale.MessagesFor(requestLocale(c)).InvalidRequest)
		return
	}
	l := locale.Parse(req.Locale)
	msg := locale.MessagesFor(l)

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Report == "" {
		errorJSON(c, http.StatusBadRequest, msg.EmailMissingFields)
		return
	}
	if !mailer.ValidEmail(email) {
		errorJSON(c, http.StatusBadRequest, msg.InvalidEmail)
		return
	}
	if !h.mailer.Configured() {
		errorJSON(c, http.StatusInternalServerError, msg.EmailNotConfigured)
		return
	}

	if err := h.mailer.SendReport(c.Request.Context(), email, req.Report, l, req.Image()); err != nil {
		h.logger.Error("SendEmail(): Resend API error", zap.Error(err))
		errorJSON(c, http.StatusBadGateway, msg.EmailFailed)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
