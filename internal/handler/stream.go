package handler

import (
	"net/http"
	"time"

	"github.com/AlexZinkM/staking-dashboard/internal/model"
	"github.com/AlexZinkM/staking-dashboard/staking"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// StreamConfig configures the dashboard stream
type StreamConfig struct {
	PingInterval time.Duration
	WriteTimeout time.Duration
}

// DefaultStreamConfig returns default stream configuration
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		PingInterval: 30 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// StreamHandler pushes a dashboard frame over WebSocket on every snapshot or lock change
type StreamHandler struct {
	session  *staking.Session
	config   StreamConfig
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewStreamHandler creates a new StreamHandler
func NewStreamHandler(session *staking.Session, config *StreamConfig, log *zap.Logger) *StreamHandler {
	cfg := DefaultStreamConfig()
	if config != nil {
		cfg = *config
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &StreamHandler{
		session: session,
		config:  cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		log: log.Named("stream"),
	}
}

// ServeHTTP handles GET /staking/stream
// @Summary      Dashboard stream
// @Description  WebSocket. Sends the current dashboard right away, then one frame per change.
// @Tags         staking
// @Success      101  {object}  model.DashboardResponse
// @Router       /staking/stream [get]
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		h.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Only the latest frame matters; a slow client skips intermediate ones
	frames := make(chan model.DashboardResponse, 1)
	unsubscribe := h.session.Subscribe(func(frame model.DashboardResponse) {
		select {
		case <-frames:
		default:
		}
		select {
		case frames <- frame:
		default:
		}
	})
	defer unsubscribe()

	// Reader detects the client closing the connection
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.write(conn, h.session.Dashboard()); err != nil {
		return
	}

	ticker := time.NewTicker(h.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case frame := <-frames:
			if err := h.write(conn, frame); err != nil {
				h.log.Debug("stream write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(h.config.WriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (h *StreamHandler) write(conn *websocket.Conn, frame model.DashboardResponse) error {
	conn.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
	return conn.WriteJSON(frame)
}
