package store

import (
	"encoding/json"
	"time"
)

// Hand is one finalized hand history row. Record carries the full assembled
// history document as JSON; the scalar columns exist for listing and filters.
type Hand struct {
	ID           string          `json:"id"`
	SessionID    string          `json:"session_id"`
	TableSize    int             `json:"table_size"`
	HeroPosition string          `json:"hero_position"`
	SmallBlind   int64           `json:"small_blind"`
	BigBlind     int64           `json:"big_blind"`
	Pot          int64           `json:"pot"`
	HeroNet      int64           `json:"hero_net"`
	Showdown     bool            `json:"showdown"`
	Record       json.RawMessage `json:"record"`
	CreatedAt    time.Time       `json:"created_at"`
}

// HandSummary is the listing projection: everything but the record body.
type HandSummary struct {
	ID           string    `json:"id"`
	TableSize    int       `json:"table_size"`
	HeroPosition string    `json:"hero_position"`
	SmallBlind   int64     `json:"small_blind"`
	BigBlind     int64     `json:"big_blind"`
	Pot          int64     `json:"pot"`
	HeroNet      int64     `json:"hero_net"`
	Showdown     bool      `json:"showdown"`
	CreatedAt    time.Time `json:"created_at"`
}
