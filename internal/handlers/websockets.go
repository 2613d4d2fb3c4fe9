package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"travel_journal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	defaultMaxMsgSize = 8 << 20 // 8 MB, room for a cover image
	errQueueSize      = 8
)

const (
	envelopeError = "error"

	errBadMessage = "malformed message"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

type redirectData struct {
	Path string `json:"path"`
}

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

// @Summary      Tab channel
// @Description  Upgrades to a WebSocket bound to one browser tab. Inbound {"type","data"} messages drive the tab; outbound frames are {"type":"view"|"redirect"|"error"}.
// @Tags         pages
// @Param        path  query  string  false  "Client path the tab starts on"  example(/articles)
// @Success      101
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	path := c.DefaultQuery("path", service.PathLanding)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(h.cfg.MaxMessageBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// The tab lives as long as this connection.
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	tab := h.services.Tabs.Open(ctx, uuid.NewString(), path)

	// Reader goroutine dispatches inbound messages and detects disconnects.
	done := make(chan struct{})
	errs := make(chan string, errQueueSize)
	go h.startReader(conn, tab, errs, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	// Writer/select loop: the only goroutine writing to conn.
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "tab", tab.ID(), "err", err)
				}
				return
			}
		case msg := <-errs:
			if err := writeEnvelope(conn, wsEnvelope{Type: envelopeError, Error: msg}); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "tab", tab.ID(), "err", err)
				}
				return
			}
		case f, ok := <-tab.Frames():
			if !ok {
				return
			}
			if err := writeEnvelope(conn, frameEnvelope(f)); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "tab", tab.ID(), "err", err)
				}
				return
			}
		}
	}
}

// startReader decodes inbound messages and hands them to the tab.
// A bad message is answered with an error envelope; the connection stays open.
func (h *Handler) startReader(conn *websocket.Conn, tab service.Runtime, errs chan<- string, done chan<- struct{}) {
	defer close(done)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "tab", tab.ID(), "err", err)
			}
			return
		}

		var msg service.Message
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Type == "" {
			reportError(errs, errBadMessage)
			continue
		}
		if err := tab.Dispatch(msg); err != nil {
			if h.log != nil {
				h.log.Warnw("ws_dispatch_failed", "tab", tab.ID(), "type", msg.Type, "err", err)
			}
			reportError(errs, err.Error())
		}
	}
}

// reportError never blocks the reader; errors beyond the queue are dropped.
func reportError(errs chan<- string, msg string) {
	select {
	case errs <- msg:
	default:
	}
}

func frameEnvelope(f service.Frame) wsEnvelope {
	if f.Kind == service.FrameRedirect {
		return wsEnvelope{Type: string(f.Kind), Data: redirectData{Path: f.Path}}
	}
	return wsEnvelope{Type: string(f.Kind), Data: f.View}
}

func writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
