package ports

import (
	"context"

	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
)

type PartyRepository interface {
	// List returns every party, ruling parties first, then by id.
	List(ctx context.Context) ([]domain.Party, error)
}

type PartyService interface {
	ListParties(ctx context.Context) ([]domain.Party, error)
}
