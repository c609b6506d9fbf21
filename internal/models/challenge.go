package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Challenge struct {
	bun.BaseModel `bun:"table:challenge"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Title         string    `bun:"title,notnull" json:"title"`
	Description   string    `bun:"description" json:"description"`
	Category      string    `bun:"category,notnull" json:"category"`
	TimesUsed     int       `bun:"times_used" json:"times_used"`
	Active        bool      `bun:"active" json:"active"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
