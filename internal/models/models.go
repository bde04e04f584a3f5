// internal/models/models.go
package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Player is one seat occupant at a table. Automated seats have IsBot set
// and no connection.
type Player struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Seat      uint8           `json:"seat"`
	Conn      *websocket.Conn `json:"-"`
	Connected bool            `json:"connected"`
	IsBot     bool            `json:"isBot"`
}

// GameAction is a decoded client message: an action type plus an arbitrary
// payload, routed by the table.
type GameAction struct {
	ActionType string                 `json:"actionType"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}
