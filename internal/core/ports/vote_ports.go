package ports

import (
	"context"

	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
)

type VoteRepository interface {
	// UpsertVote makes vote the user's only current vote in one atomic
	// write. Unknown users or parties yield domain.ErrUnknownUser or
	// domain.ErrUnknownParty and leave any prior vote in place.
	UpsertVote(ctx context.Context, vote *domain.Vote) error
	// GetByUser returns nil, nil when the user has not voted.
	GetByUser(ctx context.Context, userID string) (*domain.Vote, error)
}

type VoteInput struct {
	UserID  string
	PartyID int64
}

type VoteService interface {
	CastVote(ctx context.Context, input VoteInput) error
	CurrentVote(ctx context.Context, userID string) (*domain.Vote, error)
}
