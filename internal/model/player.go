package model

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

// UsernameMaxLength is the storage limit for the username column.
const UsernameMaxLength = 32

// Player is the persisted player row. The id originates from the messaging
// platform's user identifier and is never generated by this service.
type Player struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt null.Time `db:"updated_at"`
}

// PlayerSchema is the wire representation of a player.
type PlayerSchema struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt null.Time `json:"updated_at"`
}

// Schema maps the storage row to its wire shape.
func (p *Player) Schema() *PlayerSchema {
	return &PlayerSchema{
		ID:        p.ID,
		Username:  p.Username,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// Identity holds the claims the request gate extracts from a verified
// init-data payload. Only identities produced by the gate are trustworthy.
type Identity struct {
	PlayerID  int64
	Username  string
	FirstName string
}
