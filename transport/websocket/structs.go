package websocket

import "encoding/json"

// Message is the envelope for all traffic in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type createRoomPayload struct {
	Username string `json:"username"`
}

type joinRoomPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type movePayload struct {
	RoomID string `json:"roomId"`
	Index  int    `json:"index"`
}
