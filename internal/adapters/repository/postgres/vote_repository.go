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
	votesUserForeignKey  = "votes_user_id_fkey"
	votesPartyForeignKey = "votes_party_id_fkey"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// UpsertVote relies on the unique constraint on votes.user_id: the insert and
// the replacement of an existing vote happen in one statement.
func (r *voteRepository) UpsertVote(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, user_id, party_id, voted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET id = EXCLUDED.id,
		    party_id = EXCLUDED.party_id,
		    voted_at = EXCLUDED.voted_at
	`
	_, err := r.db.ExecContext(ctx, query, vote.ID, vote.UserID, vote.PartyID, vote.VotedAt)
	if err != nil {
		if constraint, ok := constraintViolation(err, foreignKeyViolation); ok {
			switch constraint {
			case votesUserForeignKey:
				return domain.ErrUnknownUser
			case votesPartyForeignKey:
				return domain.ErrUnknownParty
			}
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) GetByUser(ctx context.Context, userID string) (*domain.Vote, error) {
	query := `SELECT id, user_id, party_id, voted_at FROM votes WHERE user_id = $1`
	var vote domain.Vote
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&vote.ID, &vote.UserID, &vote.PartyID, &vote.VotedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return &vote, nil
}
