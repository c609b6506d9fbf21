package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	CategoryCommunity   = "community"
	CategoryEnvironment = "environment"
	CategoryFamily      = "family"
	CategoryStrangers   = "strangers"
)

var Categories = []string{
	CategoryCommunity,
	CategoryEnvironment,
	CategoryFamily,
	CategoryStrangers,
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Action rows are immutable once written, only claps_count moves.
type Action struct {
	bun.BaseModel `bun:"table:action"`
	ID            int64     `bun:"id,pk,autoincrement" json:"-"`
	UUID          string    `bun:"uuid,notnull" json:"id"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id"`
	ChallengeID   *int64    `bun:"challenge_id" json:"challenge_id,omitempty"`
	Category      string    `bun:"category,notnull" json:"category"`
	Text          *string   `bun:"text" json:"text,omitempty"`
	Location      *string   `bun:"location" json:"location,omitempty"`
	ClapsCount    int       `bun:"claps_count" json:"claps_count"`
	CompletedAt   time.Time `bun:"completed_at,notnull" json:"completed_at"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
