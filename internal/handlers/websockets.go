package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 5 * time.Second
	minInterval      = 100 * time.Millisecond
	maxInterval      = 60 * time.Second
	maxIntervalMilli = 60_000
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// The zero Upgrader rejects cross-origin handshakes.
var upgrader = websocket.Upgrader{}

// @Summary      Live summary stream
// @Description  Upgrades to a WebSocket and pushes {"type":"summary","data":Summary} every interval (?interval=5s or ?interval_ms=5000).
// @Tags         summary
// @Param        interval     query  string  false  "Go duration, 100ms..60s"
// @Param        interval_ms  query  int     false  "Milliseconds, 100..60000"
// @Success      101
// @Failure      401  {object}  ErrorResponse
// @Router       /api/summary/ws [get]
// @Security     SessionCookie
func (h *Handler) wsSummary(c *gin.Context) {
	interval := h.parseInterval(c)
	owner := ownerID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendSummary(ctx, conn, owner); err != nil {
		h.log.Infow("ws_write_failed_initial", "user_id", owner, "err", err)
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := h.sendSummary(ctx, conn, owner); err != nil {
				h.log.Infow("ws_write_failed", "user_id", owner, "err", err)
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d >= minInterval && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v >= int(minInterval/time.Millisecond) && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

// sendSummary recomputes the owner's summary and writes it. A failed
// computation is reported to the client before the stream closes.
func (h *Handler) sendSummary(ctx context.Context, conn *websocket.Conn, owner int64) error {
	sum, err := h.services.Summary(ctx, owner)
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err != nil {
		h.log.Errorw("ws_summary_failed", "user_id", owner, "err", err)
		_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: msgServerError})
		return err
	}
	return conn.WriteJSON(wsEnvelope{Type: "summary", Data: sum})
}
