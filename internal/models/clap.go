package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Clap is one user's applause on one action. The storage layer keeps a
// unique index on (action_id, user_id), so a pair claps at most once.
type Clap struct {
	bun.BaseModel `bun:"table:clap"`
	ID            int64     `bun:"id,pk,autoincrement" json:"-"`
	ActionID      int64     `bun:"action_id,notnull" json:"action_id"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
