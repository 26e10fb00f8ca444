package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeSelect    MessageType = "select"
	MessageTypeUndo      MessageType = "undo"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SelectPayload is the square a player picked.
type SelectPayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ErrorPayload carries a human readable failure back to the client.
type ErrorPayload struct {
	Error string `json:"error"`
}
