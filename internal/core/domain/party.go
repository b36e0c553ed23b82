package domain

type Party struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	RulingParty bool   `json:"ruling_party"`
}
