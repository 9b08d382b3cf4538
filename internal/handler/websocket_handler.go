package handler

import (
	"errors"
	"net/http"
	"time"

	"AJY_Stylist/internal/locale"
	"AJY_Stylist/internal/models"
	"AJY_Stylist/internal/stylist"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// 요청 메시지 대기 시간 및 최대 크기 (사진 data URL 포함)
const (
	wsReadTimeout  = 30 * time.Second
	wsWriteTimeout = 10 * time.Second
	wsMaxMessage   = 20 << 20
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// 서버 -> 클라이언트 메시지
type wsMessage struct {
	Type       string  `json:"type"`
	Stage      string  `json:"stage,omitempty"`
	Report     string  `json:"report,omitempty"`
	StyleImage *string `json:"styleImage,omitempty"`
	Error      string  `json:"error,omitempty"`
	Status     int     `json:"status,omitempty"`
	Refunded   *bool   `json:"refunded,omitempty"`
}

// HandleAnalyzeConnection godoc
// @Summary      분석 WebSocket 연결
// @Description  /api/analyze 의 WebSocket 버전입니다. 진행 단계를 실시간으로 받을 수 있습니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  1. 연결 후 클라이언트는 분석 요청 JSON 한 건을 전송합니다.
// @Description  2. 서버는 `{"type":"status","stage":"payment|generating|refunding|emailing|done"}` 를 전송합니다.
// @Description  3. 마지막으로 `{"type":"result",...}` 또는 `{"type":"error",...}` 를 전송하고 연결을 종료합니다.
// @Description  인증은 HTTP Header가 아닌 **쿼리 파라미터('token')**를 통해 수행됩니다. (선택)
// @Tags         WebSocket (Analyze)
// @Param        token query string false "Supabase 액세스 토큰"
// @Success      101 {string} string "101 Switching Protocols"
// @Failure      401 {object} models.ErrorResponse "유효하지 않은 토큰"
// @Router       /ws/analyze [get]
func (h *Handler) HandleAnalyzeConnection(c *gin.Context) {
	// Upgrade 이전에 등록해야 Shutdown 이후 Wait 가 이 세션을 놓치지 않음
	h.sessions.Add(1)
	defer h.sessions.Done()

	var authEmail string
	if token := c.Query("token"); token != "" && h.auth.Enabled() {
		claims, err := h.auth.ValidateToken(token)
		if err != nil {
			errorJSON(c, http.StatusUnauthorized, "Invalid token")
			return
		}
		authEmail = claims.Email
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("HandleAnalyzeConnection(): failed to upgrade to WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	send := func(m wsMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		return conn.WriteJSON(m)
	}

	conn.SetReadLimit(wsMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

	var req models.AnalyzeRequest
	if err := conn.ReadJSON(&req); err != nil {
		h.logger.Warn("HandleAnalyzeConnection(): invalid request message", zap.Error(err))
		_ = send(wsMessage{
			Type:   "error",
			Error:  locale.MessagesFor(requestLocale(c)).InvalidRequest,
			Status: http.StatusBadRequest,
		})
		h.closeConn(conn)
		return
	}

	progress := func(s stylist.Stage) {
		if err := send(wsMessage{Type: "status", Stage: string(s)}); err != nil {
			h.logger.Debug("HandleAnalyzeConnection(): status write failed", zap.Error(err))
		}
	}

	res, err := h.analyzer.Analyze(c.Request.Context(), toStylistRequest(req, authEmail), progress)
	if err != nil {
		msg := wsMessage{Type: "error", Status: http.StatusInternalServerError, Error: locale.MessagesFor(locale.Parse(req.Locale)).ServerError}
		var aerr *stylist.Error
		if errors.As(err, &aerr) {
			refunded := aerr.Refunded
			msg.Status, msg.Error, msg.Refunded = aerr.Status, aerr.Message, &refunded
		}
		_ = send(msg)
		h.closeConn(conn)
		return
	}

	result := wsMessage{Type: "result", Report: res.Report}
	if res.StyleImage != "" {
		result.StyleImage = &res.StyleImage
	}
	if err := send(result); err != nil {
		h.logger.Warn("HandleAnalyzeConnection(): result write failed", zap.Error(err))
		return
	}
	h.closeConn(conn)
}

func (h *Handler) closeConn(conn *websocket.Conn) {
	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		h.logger.Debug("closeConn(): close frame failed", zap.Error(err))
	}
}
