package ports

import (
	"context"

	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
)

type TallyRepository interface {
	// CountVotes returns one entry per party, zero-vote parties included,
	// in catalog order.
	CountVotes(ctx context.Context) (domain.Tally, error)
}

type TallyService interface {
	Tally(ctx context.Context) (domain.Tally, error)
}
