package websocket

import "github.com/iamasit07/4-in-a-row/solo/internal/service/game"

// ClientMessage is a frame sent by the player. The first frame must be
// {"type":"init","token":...}; later frames carry an intent in Type.
type ClientMessage struct {
	Type  string `json:"type"`
	Token string `json:"token,omitempty"`
}

// ServerMessage is pushed to the player.
type ServerMessage struct {
	Type     string         `json:"type"`
	Message  string         `json:"message,omitempty"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
}

const (
	MessageSnapshot        = "snapshot"
	MessageError           = "error"
	MessageClosed          = "closed"
	MessageForceDisconnect = "force_disconnect"
)
