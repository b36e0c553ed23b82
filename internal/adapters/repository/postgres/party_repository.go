package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
	"github.com/vncsmyrnk/dailyvote/internal/core/ports"
)

type partyRepository struct {
	db *sql.DB
}

func NewPartyRepository(db *sql.DB) ports.PartyRepository {
	return &partyRepository{
		db: db,
	}
}

func (r *partyRepository) List(ctx context.Context) ([]domain.Party, error) {
	query := `
		SELECT party_id, name, ruling_party
		FROM parties
		ORDER BY ruling_party DESC, party_id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	parties := []domain.Party{}
	for rows.Next() {
		var p domain.Party
		if err := rows.Scan(&p.ID, &p.Name, &p.RulingParty); err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		parties = append(parties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parties: %w", err)
	}
	return parties, nil
}
