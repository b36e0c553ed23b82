package domain

import "time"

// MaxPasswordBytes is the longest password, in bytes, that can be hashed.
const MaxPasswordBytes = 72

type User struct {
	ID           string    `json:"user_id"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthResult is the outcome of a login attempt. A credential mismatch is
// reported through Success, never as an error.
type AuthResult struct {
	Success bool   `json:"success"`
	UserID  string `json:"user_id,omitempty"`
}

// Conflict names the uniqueness rule a new account would break.
type Conflict int

const (
	NoConflict Conflict = iota
	ConflictUserID
	ConflictContact
)

func (c Conflict) Err() error {
	switch c {
	case ConflictUserID:
		return ErrDuplicateUserID
	case ConflictContact:
		return ErrDuplicateContact
	}
	return nil
}
