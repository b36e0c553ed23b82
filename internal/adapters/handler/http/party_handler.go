package http

import (
	"net/http"

	"github.com/vncsmyrnk/dailyvote/internal/core/ports"
)

type PartyHandler struct {
	service ports.PartyService
}

func NewPartyHandler(service ports.PartyService) *PartyHandler {
	return &PartyHandler{
		service: service,
	}
}

func (h *PartyHandler) ListParties(w http.ResponseWriter, r *http.Request) {
	parties, err := h.service.ListParties(r.Context())
	if err != nil {
		if timedOut(r) {
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load parties")
		return
	}
	writeJSON(w, http.StatusOK, parties)
}
