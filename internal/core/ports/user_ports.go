package ports

import (
	"context"

	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
)

type UserRepository interface {
	// FindConflict reports which uniqueness rule an account with these
	// values would break. It is a fast path only; Create enforces the
	// same rules.
	FindConflict(ctx context.Context, userID, phone string) (domain.Conflict, error)
	// Create stores the user. A uniqueness violation is returned as
	// domain.ErrDuplicateUserID or domain.ErrDuplicateContact.
	Create(ctx context.Context, user *domain.User) error
	// GetByID returns nil, nil when no user has this id.
	GetByID(ctx context.Context, userID string) (*domain.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type RegisterInput struct {
	UserID   string
	Password string
	Phone    string
}

type LoginInput struct {
	UserID   string
	Password string
}

type AccountService interface {
	Register(ctx context.Context, input RegisterInput) error
	Login(ctx context.Context, input LoginInput) (domain.AuthResult, error)
}
