package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
	"github.com/vncsmyrnk/dailyvote/internal/core/ports"
)

type accountService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	logger *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAccountService(users ports.UserRepository, hasher ports.PasswordHasher, logger *zap.Logger) ports.AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &accountService{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

func (s *accountService) Register(ctx context.Context, input ports.RegisterInput) error {
	if isBlank(input.UserID) || isBlank(input.Password) || isBlank(input.Phone) {
		return domain.ErrMissingField
	}
	if len(input.Password) > domain.MaxPasswordBytes {
		return domain.ErrPasswordTooLong
	}

	conflict, err := s.users.FindConflict(ctx, input.UserID, input.Phone)
	if err != nil {
		s.logger.Error("failed to check account conflicts", zap.String("user_id", input.UserID), zap.Error(err))
		return storageError("check account conflicts", err)
	}
	if conflict != domain.NoConflict {
		return conflict.Err()
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("failed to hash password", zap.String("user_id", input.UserID), zap.Error(err))
		return err
	}

	user := &domain.User{
		ID:           input.UserID,
		PasswordHash: hash,
		Phone:        input.Phone,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUserID) || errors.Is(err, domain.ErrDuplicateContact) {
			s.logger.Info("registration rejected by unique constraint", zap.String("user_id", input.UserID), zap.Error(err))
			return err
		}
		s.logger.Error("failed to create user", zap.String("user_id", input.UserID), zap.Error(err))
		return storageError("create user", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return nil
}

func (s *accountService) Login(ctx context.Context, input ports.LoginInput) (domain.AuthResult, error) {
	// No stored hash can match a password that was never accepted.
	if isBlank(input.UserID) || input.Password == "" || len(input.Password) > domain.MaxPasswordBytes {
		return domain.AuthResult{}, nil
	}

	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		s.logger.Error("failed to look up user", zap.String("user_id", input.UserID), zap.Error(err))
		return domain.AuthResult{}, storageError("look up user", err)
	}

	if user == nil {
		// Keep the response time of unknown ids close to that of known ones.
		s.hasher.Compare(s.placeholderHash(), input.Password)
		return domain.AuthResult{}, nil
	}
	if !s.hasher.Compare(user.PasswordHash, input.Password) {
		return domain.AuthResult{}, nil
	}

	return domain.AuthResult{Success: true, UserID: user.ID}, nil
}

func (s *accountService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("placeholder-password")
		if err != nil {
			s.logger.Warn("failed to build placeholder hash", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
