package websocket

import (
	"encoding/json"

	"github.com/Hives/noughts-and-crosses/internal/tictactoe"
)

const (
	actionNew     = "game:new"
	actionGet     = "game:get"
	actionMove    = "game:move"
	actionJump    = "game:jump"
	actionRestart = "game:restart"
	actionError   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	GameID string `json:"game_id,omitempty"`
	Cell   *int   `json:"cell,omitempty"`
	Step   *int   `json:"step,omitempty"`
}

type ResponsePayload struct {
	Game  *tictactoe.View `json:"game,omitempty"`
	Error string          `json:"error,omitempty"`
}

type Response struct {
	Action  string          `json:"action"`
	Payload ResponsePayload `json:"payload"`
}
