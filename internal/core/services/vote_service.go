package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
	"github.com/vncsmyrnk/dailyvote/internal/core/ports"
)

type voteService struct {
	voteRepo ports.VoteRepository
	logger   *zap.Logger
}

func NewVoteService(voteRepo ports.VoteRepository, logger *zap.Logger) ports.VoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &voteService{
		voteRepo: voteRepo,
		logger:   logger,
	}
}

// CastVote replaces the user's current vote. The write is a single upsert, so
// a failure keeps the previous vote rather than leaving the user without one.
func (s *voteService) CastVote(ctx context.Context, input ports.VoteInput) error {
	if isBlank(input.UserID) || input.PartyID == 0 {
		return domain.ErrMissingField
	}

	vote := &domain.Vote{
		ID:      uuid.New(),
		UserID:  input.UserID,
		PartyID: input.PartyID,
		VotedAt: time.Now().UTC(),
	}

	if err := s.voteRepo.UpsertVote(ctx, vote); err != nil {
		if errors.Is(err, domain.ErrUnknownUser) || errors.Is(err, domain.ErrUnknownParty) {
			return err
		}
		s.logger.Error("failed to save vote",
			zap.String("user_id", input.UserID),
			zap.Int64("party_id", input.PartyID),
			zap.Error(err),
		)
		return storageError("save vote", err)
	}

	s.logger.Debug("vote recorded", zap.String("user_id", vote.UserID), zap.Int64("party_id", vote.PartyID))
	return nil
}

func (s *voteService) CurrentVote(ctx context.Context, userID string) (*domain.Vote, error) {
	if isBlank(userID) {
		return nil, domain.ErrMissingField
	}

	vote, err := s.voteRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get current vote", zap.String("user_id", userID), zap.Error(err))
		return nil, storageError("get current vote", err)
	}
	return vote, nil
}
