package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
	"github.com/vncsmyrnk/dailyvote/internal/core/ports"
)

type partyService struct {
	repo   ports.PartyRepository
	logger *zap.Logger
}

func NewPartyService(repo ports.PartyRepository, logger *zap.Logger) ports.PartyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &partyService{
		repo:   repo,
		logger: logger,
	}
}

func (s *partyService) ListParties(ctx context.Context) ([]domain.Party, error) {
	parties, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list parties", zap.Error(err))
		return nil, storageError("list parties", err)
	}
	return parties, nil
}
