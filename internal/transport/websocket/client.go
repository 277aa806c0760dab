package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type connection struct {
	conn *websocket.Conn
	// conn.WriteJSON is not safe for concurrent use
	writeMu sync.Mutex
}

// ConnectionManager tracks the one controlling connection per game session.
type ConnectionManager struct {
	connections map[string]*connection
	mu          sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*connection),
	}
}

// AddConnection registers conn as the controller of sessionID. An older
// controller is told why and closed.
func (cm *ConnectionManager) AddConnection(sessionID string, conn *websocket.Conn) {
	cm.mu.Lock()
	old, exists := cm.connections[sessionID]
	cm.connections[sessionID] = &connection{conn: conn}
	cm.mu.Unlock()

	if exists {
		old.writeMu.Lock()
		old.conn.SetWriteDeadline(time.Now().Add(time.Second))
		_ = old.conn.WriteJSON(ServerMessage{Type: MessageForceDisconnect, Message: "Session opened elsewhere"})
		old.writeMu.Unlock()
		old.conn.Close()
	}
}

// RemoveConnectionIfMatching closes conn only if it is still the current
// controller, so a replaced socket cannot unregister its successor.
func (cm *ConnectionManager) RemoveConnectionIfMatching(sessionID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if current, exists := cm.connections[sessionID]; exists && current.conn == conn {
		current.conn.Close()
		delete(cm.connections, sessionID)
	}
}

func (cm *ConnectionManager) IsCurrentConnection(sessionID string, conn *websocket.Conn) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	current, exists := cm.connections[sessionID]
	return exists && current.conn == conn
}

// SendMessage writes a JSON message to the session's controller. A session
// with no controller is not an error.
func (cm *ConnectionManager) SendMessage(sessionID string, message ServerMessage) error {
	cm.mu.RLock()
	c, exists := cm.connections[sessionID]
	cm.mu.RUnlock()

	if !exists {
		return nil
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(message)
}
