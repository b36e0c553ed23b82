package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
	"github.com/vncsmyrnk/dailyvote/internal/core/ports"
)

type tallyService struct {
	tallyRepo ports.TallyRepository
	logger    *zap.Logger
}

func NewTallyService(tallyRepo ports.TallyRepository, logger *zap.Logger) ports.TallyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &tallyService{
		tallyRepo: tallyRepo,
		logger:    logger,
	}
}

// Tally counts current votes per party. It reads at the store's default
// isolation, so a tally taken while votes are being cast is a snapshot.
func (s *tallyService) Tally(ctx context.Context) (domain.Tally, error) {
	tally, err := s.tallyRepo.CountVotes(ctx)
	if err != nil {
		s.logger.Error("failed to count votes", zap.Error(err))
		return nil, storageError("count votes", err)
	}
	return tally, nil
}
