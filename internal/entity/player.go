package entity

// Player is one connected participant. The ID is the transport's
// connection identifier and is treated as an opaque correlation key.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	RoomID string `json:"room_id,omitempty"`
}
