package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is the current vote of a user. Each user has at most one; casting
// again replaces it.
type Vote struct {
	ID      uuid.UUID `json:"id"`
	UserID  string    `json:"user_id"`
	PartyID int64     `json:"party_id"`
	VotedAt time.Time `json:"voted_at"`
}
