package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:user"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Username      string    `bun:"username,notnull" json:"username"`
	DisplayName   string    `bun:"display_name" json:"display_name"`
	Email         *string   `bun:"email" json:"-"`
	Avatar        *string   `bun:"avatar" json:"avatar"`
	TotalActions  int       `bun:"total_actions" json:"total_actions"`
	CurrentStreak int       `bun:"current_streak" json:"current_streak"`
	LongestStreak int       `bun:"longest_streak" json:"longest_streak"`
	ClapsReceived int       `bun:"claps_received" json:"claps_received"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updated_at"`
}

// UserFromAuth carries the identity resolved from a session token,
// only used in middleware.
type UserFromAuth struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
