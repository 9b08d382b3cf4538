package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"AJY_Stylist/internal/llm"
	"AJY_Stylist/internal/locale"
	"AJY_Stylist/internal/middleware"
	"AJY_Stylist/internal/models"
	"AJY_Stylist/internal/prompt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Analyze godoc
// @Summary      스타일 분석
// @Description  사진과 체형 정보로 AI 스타일 리포트와 스타일 이미지를 생성합니다.
// @Description  checkout_id 가 있으면 결제 건으로 처리하며, 리포트 생성 실패 시 자동 환불 후 refunded 로 결과를 알려줍니다.
// @Tags         Analyze
// @Accept       json
// @Produce      json
// @Param        request body models.AnalyzeRequest true "분석 요청"
// @Success      200 {object} models.AnalyzeResponse
// @Failure      400 {object} models.ErrorResponse "필수 입력 누락"
// @Failure      500 {object} models.ErrorResponse "API 키 미설정 또는 빈 리포트"
// @Failure      502 {object} models.ErrorResponse "OpenAI 오류"
// @Failure      504 {object} models.ErrorResponse "시간 초과"
// @Router       /api/analyze [post]
func (h *Handler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, locale.MessagesFor(requestLocale(c)).InvalidRequest)
		return
	}

	res, err := h.analyzer.Analyze(c.Request.Context(), toStylistRequest(req, c.GetString(middleware.ContextEmail)), nil)
	if err != nil {
		h.analyzeError(c, err, locale.Parse(req.Locale))
		return
	}

	resp := models.AnalyzeResponse{Report: res.Report}
	if res.StyleImage != "" {
		resp.StyleImage = &res.StyleImage
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateImage godoc
// @Summary      스타일 이미지 단독 생성
// @Description  업로드 사진을 기반으로 3분할 룩북 이미지를 생성합니다. OpenAI 오류는 상태 코드와 본문을 그대로 전달합니다.
// @Tags         Analyze
// @Accept       json
// @Produce      json
// @Param        request body models.GenerateImageRequest true "사진 (data URL)"
// @Success      200 {object} map[string]string "image: data URL 또는 이미지 URL"
// @Failure      400 {object} models.ErrorResponse "사진 누락"
// @Failure      500 {object} models.ErrorResponse "API 키 미설정"
// @Router       /api/generate-image [post]
func (h *Handler) GenerateImage(c *gin.Context) {
	var req models.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid request")
		return
	}

	if !h.images.HasAPIKey() {
		errorJSON(c, http.StatusInternalServerError, "Missing API key")
		return
	}
	if req.Photo == "" {
		errorJSON(c, http.StatusBadRequest, "Missing photo")
		return
	}

	image, err := h.images.EditImage(c.Request.Context(), req.Photo, prompt.StylePrompt())
	if err != nil {
		var apiErr *llm.APIError
		if errors.As(err, &apiErr) {
			h.logger.Error("GenerateImage(): OpenAI error", zap.Int("status", apiErr.StatusCode))
			c.JSON(apiErr.StatusCode, models.ErrorResponse{
				Error:   fmt.Sprintf("OpenAI Error: %d", apiErr.StatusCode),
				Details: apiErr.Body,
			})
			return
		}
		h.logger.Error("GenerateImage(): image generation failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, err.Error())
		return
	}

	var out *string
	if image != "" {
		out = &image
	}
	c.JSON(http.StatusOK, gin.H{"image": out})
}

// paidCheckout 요청 본문의 checkout_id 가 Polar 에 존재하는 체크아웃이면 true
// 결제 완료 건은 요청 제한 없이 분석(실패 시 환불)까지 진행되어야 함
func (h *Handler) paidCheckout(c *gin.Context) bool {
	if !h.payments.Configured() || c.Request.Body == nil {
		return false
	}

	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return false
	}

	var peek struct {
		CheckoutID string `json:"checkout_id"`
	}
	if err := json.Unmarshal(body, &peek); err != nil || strings.TrimSpace(peek.CheckoutID) == "" {
		return false
	}

	if _, err := h.payments.GetCheckout(c.Request.Context(), peek.CheckoutID); err != nil {
		h.logger.Debug("paidCheckout(): checkout lookup failed, rate limit applies", zap.String("checkout_id", peek.CheckoutID), zap.Error(err))
		return false
	}
	return true
}
