package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
	"github.com/vncsmyrnk/dailyvote/internal/core/ports"
)

const (
	usersPrimaryKey = "users_pkey"
	usersPhoneKey   = "users_phone_key"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindConflict(ctx context.Context, userID, phone string) (domain.Conflict, error) {
	query := `
		SELECT
			COALESCE(BOOL_OR(user_id = $1), FALSE),
			COALESCE(BOOL_OR(phone = $2), FALSE)
		FROM users
		WHERE user_id = $1 OR phone = $2
	`
	var idTaken, phoneTaken bool
	if err := r.db.QueryRowContext(ctx, query, userID, phone).Scan(&idTaken, &phoneTaken); err != nil {
		return domain.NoConflict, fmt.Errorf("failed to check user conflicts: %w", err)
	}

	switch {
	case idTaken:
		return domain.ConflictUserID, nil
	case phoneTaken:
		return domain.ConflictContact, nil
	}
	return domain.NoConflict, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, password_hash, phone, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, user.ID, user.PasswordHash, user.Phone, user.CreatedAt).Scan(&user.CreatedAt)
	if err != nil {
		if constraint, ok := constraintViolation(err, uniqueViolation); ok {
			switch constraint {
			case usersPrimaryKey:
				return domain.ErrDuplicateUserID
			case usersPhoneKey:
				return domain.ErrDuplicateContact
			}
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT user_id, password_hash, phone, created_at FROM users WHERE user_id = $1`
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&user.ID, &user.PasswordHash, &user.Phone, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
