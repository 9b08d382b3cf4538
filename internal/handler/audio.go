package handler

import (
	"errors"
	"net/http"

	"AJY_Stylist/internal/locale"
	"AJY_Stylist/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ReportAudio godoc
// @Summary      리포트 음성 변환
// @Description  리포트를 음성(MP3)으로 변환합니다. 마크다운 기호는 제거되고 입력 한도를 넘는 부분은 잘립니다.
// @Tags         Analyze
// @Accept       json
// @Produce      audio/mpeg
// @Param        request body models.ReportAudioRequest true "리포트 및 언어"
// @Success      200 {file} file "MP3 오디오"
// @Failure      400 {object} models.ErrorResponse "리포트 누락"
// @Failure      502 {object} models.ErrorResponse "TTS 오류"
// @Failure      503 {object} models.ErrorResponse "TTS 미설정"
// @Router       /api/report-audio [post]
func (h *Handler) ReportAudio(c *gin.Context) {
	var req models.ReportAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.logger.Debug("ReportAudio(): validation failed", zap.String("field", verrs[0].Field()))
		}
		errorJSON(c, http.StatusBadRequest, locale.MessagesFor(requestLocale(c)).InvalidRequest)
		return
	}
	l := locale.Parse(req.Locale)
	msg := locale.MessagesFor(l)

	if h.speech == nil {
		errorJSON(c, http.StatusServiceUnavailable, msg.AudioNotConfigured)
		return
	}

	audio, err := h.speech.Synthesize(c.Request.Context(), req.Report, l)
	if err != nil {
		h.logger.Error("ReportAudio(): synthesis failed", zap.Error(err))
		errorJSON(c, http.StatusBadGateway, msg.AudioFailed)
		return
	}
	c.Data(http.StatusOK, "audio/mpeg", audio)
}
