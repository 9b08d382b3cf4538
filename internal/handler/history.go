package handler

import (
	"errors"
	"net/http"
	"strconv"

	"AJY_Stylist/internal/middleware"
	"AJY_Stylist/internal/models"
	"AJY_Stylist/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxHistoryLimit = 100

// 분석 이력 목록 응답 (Wrapper)
type HistoryResponse struct {
	History []models.Analysis `json:"history"`
}

// ListHistory godoc
// @Summary      분석 이력 조회
// @Description  로그인한 사용자의 과거 분석 기록을 최신순으로 반환합니다. 리포트 본문은 상세 조회에서 확인할 수 있습니다.
// @Tags         History
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "최대 개수 (기본 20, 최대 100)"
// @Success      200 {object} handler.HistoryResponse
// @Failure      401 {object} models.ErrorResponse "인증 실패"
// @Failure      500 {object} models.ErrorResponse "서버 내부 오류"
// @Failure      503 {object} models.ErrorResponse "이력 저장소 미설정"
// @Router       /api/history [get]
func (h *Handler) ListHistory(c *gin.Context) {
	if h.history == nil {
		errorJSON(c, http.StatusServiceUnavailable, "History not available")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	email := c.GetString(middleware.ContextEmail)
	records, err := h.history.ListAnalyses(c.Request.Context(), storage.EmailHash(email), limit)
	if err != nil {
		h.logger.Error("ListHistory(): failed to fetch records", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "Failed to fetch records")
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{History: records})
}

// GetHistory godoc
// @Summary      분석 이력 상세
// @Tags         History
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "분석 ID"
// @Success      200 {object} models.Analysis
// @Failure      401 {object} models.ErrorResponse "인증 실패"
// @Failure      404 {object} models.ErrorResponse "기록 없음"
// @Router       /api/history/{id} [get]
func (h *Handler) GetHistory(c *gin.Context) {
	if h.history == nil {
		errorJSON(c, http.StatusServiceUnavailable, "History not available")
		return
	}

	email := c.GetString(middleware.ContextEmail)
	record, err := h.history.GetAnalysis(c.Request.Context(), c.Param("id"), storage.EmailHash(email))
	if errors.Is(err, storage.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, "Analysis not found")
		return
	}
	if err != nil {
		h.logger.Error("GetHistory(): failed to fetch record", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "Failed to fetch record")
		return
	}
	c.JSON(http.StatusOK, record)
}
