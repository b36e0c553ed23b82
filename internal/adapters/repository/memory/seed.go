package memory

import "github.com/vncsmyrnk/dailyvote/internal/core/domain"

// DefaultParties mirrors the seed migration of the Postgres store.
func DefaultParties() []domain.Party {
	return []domain.Party{
		{ID: 1, Name: "自由民主党", RulingParty: true},
		{ID: 2, Name: "公明党", RulingParty: true},
		{ID: 3, Name: "立憲民主党"},
		{ID: 4, Name: "国民民主党"},
		{ID: 5, Name: "日本維新の会"},
		{ID: 6, Name: "参政党"},
		{ID: 7, Name: "日本共産党"},
		{ID: 8, Name: "れいわ新選組"},
		{ID: 9, Name: "日本保守党"},
		{ID: 10, Name: "チームみらい"},
		{ID: 11, Name: "その他"},
	}
}
