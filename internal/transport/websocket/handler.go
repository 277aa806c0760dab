package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/iamasit07/4-in-a-row/solo/internal/config"
	"github.com/iamasit07/4-in-a-row/solo/internal/service/game"
	"github.com/iamasit07/4-in-a-row/solo/pkg/auth"
	"github.com/iamasit07/4-in-a-row/solo/pkg/httputil"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler upgrades player connections and bridges them to session loops.
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || config.AppConfig == nil {
		return true
	}
	for _, allowed := range config.AppConfig.AllowedOrigins {
		if allowed == origin {
			return true
		}
	}
	log.Printf("[WS] Rejected origin %s", origin)
	return false
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	cookieToken, _ := httputil.GetSessionCookie(r)

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn, cookieToken)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn, cookieToken string) {
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	entry, err := h.initialize(conn, cookieToken)
	if err != nil {
		log.Printf("[WS] Init failed: %v", err)
		conn.WriteJSON(ServerMessage{Type: MessageError, Message: "Invalid token or session expired"})
		conn.Close()
		return
	}
	sessionID := entry.ID

	h.ConnManager.AddConnection(sessionID, conn)
	log.Printf("[WS] Connection initialized for session %s", sessionID)

	stop := make(chan struct{})
	defer func() {
		close(stop)
		log.Printf("[WS] Connection closed for session %s", sessionID)
		h.ConnManager.RemoveConnectionIfMatching(sessionID, conn)
	}()

	go h.keepAlive(sessionID, conn, stop)
	go h.pushSnapshots(entry, conn, stop)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Session %s disconnected unexpectedly: %v", sessionID, err)
			}
			return
		}
		if !h.ConnManager.IsCurrentConnection(sessionID, conn) {
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			continue
		}
		h.processMessage(entry, msg)
	}
}

// initialize reads the init frame and resolves the session it is bound to.
// The token may come from the frame or from the session cookie.
func (h *Handler) initialize(conn *websocket.Conn, cookieToken string) (*game.Entry, error) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, errors.Wrap(err, "read init frame")
	}

	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, errors.Wrap(err, "decode init frame")
	}
	if msg.Type != "init" {
		return nil, errors.Errorf("expected init frame, got %q", msg.Type)
	}

	token := msg.Token
	if token == "" {
		token = cookieToken
	}
	if token == "" {
		return nil, errors.New("missing token")
	}

	claims, err := auth.ValidateSessionToken(token)
	if err != nil {
		return nil, err
	}
	entry, ok := h.SessionManager.GetSession(claims.SessionID)
	if !ok {
		return nil, errors.Errorf("session %s not found", claims.SessionID)
	}
	return entry, nil
}

func (h *Handler) processMessage(entry *game.Entry, msg ClientMessage) {
	intent, ok := game.ParseIntent(msg.Type)
	if !ok {
		h.ConnManager.SendMessage(entry.ID, ServerMessage{Type: MessageError, Message: "Unknown message type"})
		return
	}
	if !entry.Send(intent) {
		h.ConnManager.SendMessage(entry.ID, ServerMessage{Type: MessageError, Message: "Game is not accepting input"})
	}
}

// pushSnapshots forwards every changed snapshot until the loop ends or the
// connection goes away.
func (h *Handler) pushSnapshots(entry *game.Entry, conn *websocket.Conn, stop <-chan struct{}) {
	snaps, unsubscribe := entry.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-stop:
			return
		case snap, ok := <-snaps:
			if !ok {
				h.sendClosed(entry.ID, conn)
				return
			}
			if !h.ConnManager.IsCurrentConnection(entry.ID, conn) {
				return
			}
			if err := h.ConnManager.SendMessage(entry.ID, ServerMessage{Type: MessageSnapshot, Snapshot: &snap}); err != nil {
				log.Printf("[WS] Failed to push snapshot to %s: %v", entry.ID, err)
				return
			}
		case <-entry.Loop.Done():
			h.drain(entry.ID, conn, snaps)
			h.sendClosed(entry.ID, conn)
			return
		}
	}
}

// drain forwards snapshots the loop emitted before it stopped.
func (h *Handler) drain(sessionID string, conn *websocket.Conn, snaps <-chan game.Snapshot) {
	for {
		select {
		case snap, ok := <-snaps:
			if !ok || !h.ConnManager.IsCurrentConnection(sessionID, conn) {
				return
			}
			h.ConnManager.SendMessage(sessionID, ServerMessage{Type: MessageSnapshot, Snapshot: &snap})
		default:
			return
		}
	}
}

func (h *Handler) sendClosed(sessionID string, conn *websocket.Conn) {
	if h.ConnManager.IsCurrentConnection(sessionID, conn) {
		h.ConnManager.SendMessage(sessionID, ServerMessage{Type: MessageClosed, Message: "Session ended"})
	}
}

func (h *Handler) keepAlive(sessionID string, conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !h.ConnManager.IsCurrentConnection(sessionID, conn) {
				return
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}
