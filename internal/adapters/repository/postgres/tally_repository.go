package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
	"github.com/vncsmyrnk/dailyvote/internal/core/ports"
)

type tallyRepository struct {
	db *sql.DB
}

func NewTallyRepository(db *sql.DB) ports.TallyRepository {
	return &tallyRepository{
		db: db,
	}
}

func (r *tallyRepository) CountVotes(ctx context.Context) (domain.Tally, error) {
	query := `
		SELECT p.party_id, p.name, COUNT(v.id)
		FROM parties p
		LEFT JOIN votes v ON v.party_id = p.party_id
		GROUP BY p.party_id, p.name, p.ruling_party
		ORDER BY p.ruling_party DESC, p.party_id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	tally := domain.Tally{}
	for rows.Next() {
		var pc domain.PartyCount
		if err := rows.Scan(&pc.PartyID, &pc.Name, &pc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		tally = append(tally, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote counts: %w", err)
	}
	return tally, nil
}
