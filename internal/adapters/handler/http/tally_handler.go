package http

import (
	"net/http"

	"github.com/vncsmyrnk/dailyvote/internal/core/ports"
)

type TallyHandler struct {
	service ports.TallyService
}

func NewTallyHandler(service ports.TallyService) *TallyHandler {
	return &TallyHandler{
		service: service,
	}
}

// GetTally answers with an object mapping each party name to its number of
// current votes, in catalog order.
func (h *TallyHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	tally, err := h.service.Tally(r.Context())
	if err != nil {
		if timedOut(r) {
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load tally")
		return
	}
	writeJSON(w, http.StatusOK, tally)
}
