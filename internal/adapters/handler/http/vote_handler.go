package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
	"github.com/vncsmyrnk/dailyvote/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	UserID  string `json:"user_id"`
	PartyID *int64 `json:"party_id"`
}

type currentVoteResponse struct {
	UserID  string     `json:"user_id"`
	PartyID *int64     `json:"party_id"`
	VotedAt *time.Time `json:"voted_at,omitempty"`
}

func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PartyID == nil {
		writeError(w, http.StatusBadRequest, domain.ErrMissingField.Error())
		return
	}

	input := ports.VoteInput{
		UserID:  req.UserID,
		PartyID: *req.PartyID,
	}

	if err := h.service.CastVote(r.Context(), input); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingField),
			errors.Is(err, domain.ErrUnknownUser),
			errors.Is(err, domain.ErrUnknownParty):
			writeError(w, http.StatusBadRequest, err.Error())
		case timedOut(r):
		default:
			writeError(w, http.StatusInternalServerError, "failed to record vote")
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "vote recorded"})
}

func (h *VoteHandler) GetCurrentVote(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	vote, err := h.service.CurrentVote(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrMissingField) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if timedOut(r) {
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load vote")
		return
	}

	resp := currentVoteResponse{UserID: userID}
	if vote != nil {
		resp.PartyID = &vote.PartyID
		resp.VotedAt = &vote.VotedAt
	}
	writeJSON(w, http.StatusOK, resp)
}
