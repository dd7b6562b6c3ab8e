// ============================================================================
// cmdline - Command Line Tokenizer Toolkit
// ============================================================================
//
// Package:     server
// Description: WebSocket endpoint for interactive tokenization
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	mdwerror "github.com/msto63/cmdline/foundation/core/error"
	mdwlog "github.com/msto63/cmdline/foundation/core/log"
	"github.com/msto63/cmdline/internal/history/store"
)

// WebSocket message types
const (
	MessageTokenize = "tokenize"
	MessagePing     = "ping"
	MessageResult   = "result"
	MessagePong     = "pong"
	MessageError    = "error"
)

// Local tool: any origin may connect
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage represents an incoming WebSocket message
type WSMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSResponse represents an outgoing WebSocket message. ID echoes the
// client's message id.
type WSResponse struct {
	Type    string      `json:"type"`
	ID      string      `json:"id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// wsConn serializes writes on one connection
type wsConn struct {
	conn         *websocket.Conn
	mu           sync.Mutex
	writeTimeout time.Duration
}

func (c *wsConn) send(resp WSResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeTimeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	return c.conn.WriteJSON(resp)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "error", err.Error())
		return
	}

	s.trackConn(conn)
	defer s.untrackConn(conn)
	defer conn.Close()

	s.serveConn(r.Context(), &wsConn{conn: conn, writeTimeout: s.config.WriteTimeout})
}

// serveConn reads messages until the peer disconnects or stops answering pings
func (s *Server) serveConn(ctx context.Context, c *wsConn) {
	conn := c.conn
	conn.SetReadLimit(maxBodyBytes)

	logger := s.logger.
		WithCorrelationID(uuid.New().String()).
		With("remote", conn.RemoteAddr().String())
	logger.Info("WebSocket connection established")

	pongWait := 2 * s.config.PingInterval
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go s.keepAlive(c, done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", "error", err.Error())
			} else {
				logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))
		logger.Trace("WebSocket message received", mdwlog.Field("bytes", len(data)))

		var resp WSResponse
		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			resp = wsError("", mdwerror.Wrap(err, "invalid message").WithCode(mdwerror.CodeInvalidInput))
		} else {
			resp = s.dispatch(ctx, msg)
		}

		if err := c.send(resp); err != nil {
			logger.Warn("WebSocket send error", "error", err.Error())
			return
		}
	}
}

// keepAlive sends ping frames every PingInterval until done is closed
func (s *Server) keepAlive(c *wsConn, done <-chan struct{}) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(s.config.PingInterval)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

// dispatch answers one message
func (s *Server) dispatch(ctx context.Context, msg WSMessage) WSResponse {
	switch msg.Type {
	case MessagePing:
		return WSResponse{Type: MessagePong, ID: msg.ID}

	case MessageTokenize:
		var req TokenizeRequest
		if len(msg.Payload) == 0 {
			return wsError(msg.ID, mdwerror.New("tokenize payload required").
				WithCode(mdwerror.CodeInvalidInput))
		}
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return wsError(msg.ID, mdwerror.Wrap(err, "invalid tokenize payload").
				WithCode(mdwerror.CodeInvalidInput))
		}
		return WSResponse{
			Type:    MessageResult,
			ID:      msg.ID,
			Payload: s.tokenize(ctx, uuid.New().String(), store.SourceWebSocket, req),
		}

	default:
		return wsError(msg.ID, mdwerror.Newf("unknown message type %q", msg.Type).
			WithCode(mdwerror.CodeInvalidInput).
			WithDetail("type", msg.Type))
	}
}

func wsError(id string, err error) WSResponse {
	return WSResponse{
		Type: MessageError,
		ID:   id,
		Payload: WSErrorPayload{
			Code:    string(mdwerror.GetCode(err)),
			Message: err.Error(),
		},
	}
}
