package net

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Message types on the wire.
const (
	TypeInput   = "input"
	TypeWelcome = "welcome"
	TypeHUD     = "hud"
)

var ErrUnknownMessage = errors.New("unknown message type")

// ClientMessage is one decoded client frame. Keys is the full set of keys
// held when the frame was sent; mouse deltas accumulate between frames.
type ClientMessage struct {
	Type      string   `json:"type"`
	Keys      []string `json:"keys,omitempty"`
	MouseDX   float64  `json:"mouse_dx,omitempty"`
	MouseDY   float64  `json:"mouse_dy,omitempty"`
	Primary   bool     `json:"primary,omitempty"`
	Secondary bool     `json:"secondary,omitempty"`

	Session uuid.UUID `json:"-"`
}

// DecodeClient parses a client frame and rejects unknown types.
func DecodeClient(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ClientMessage{}, fmt.Errorf("decode client message: %w", err)
	}
	if msg.Type != TypeInput {
		return ClientMessage{}, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return msg, nil
}

// Welcome is the first frame a session receives.
type Welcome struct {
	Type      string    `json:"type"`
	Session   uuid.UUID `json:"session"`
	FrameRate int       `json:"frame_rate"`
	Level     string    `json:"level"`
	Control   bool      `json:"control"` // false for spectators
}

// HUD is the periodic player status frame.
type HUD struct {
	Type      string  `json:"type"`
	Tick      uint64  `json:"tick"`
	Elapsed   float64 `json:"elapsed"`
	Health    int     `json:"health"`
	MaxHealth int     `json:"max_health"`
	Dead      bool    `json:"dead"`
	Weapon    string  `json:"weapon,omitempty"`
	Ammo      int     `json:"ammo"`
	MaxAmmo   int     `json:"max_ammo"`
	Reloading bool    `json:"reloading"`
	Score     int     `json:"score"`
	Kills     int     `json:"kills"`
	Enemies   int     `json:"enemies"`
}

// Encode marshals a server frame.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return data, nil
}
