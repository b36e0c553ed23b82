package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
	"github.com/vncsmyrnk/dailyvote/internal/core/ports"
)

type AccountHandler struct {
	service ports.AccountService
	logger  *zap.Logger
}

func NewAccountHandler(service ports.AccountService, logger *zap.Logger) *AccountHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountHandler{
		service: service,
		logger:  logger,
	}
}

type registerRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, registerResponse{Message: domain.ErrMissingField.Error()})
		return
	}

	err := h.service.Register(r.Context(), ports.RegisterInput{
		UserID:   req.UserID,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingField), errors.Is(err, domain.ErrPasswordTooLong):
			writeJSON(w, http.StatusBadRequest, registerResponse{Message: err.Error()})
		case errors.Is(err, domain.ErrDuplicateUserID), errors.Is(err, domain.ErrDuplicateContact):
			writeJSON(w, http.StatusConflict, registerResponse{Message: err.Error()})
		case timedOut(r):
		default:
			writeJSON(w, http.StatusInternalServerError, registerResponse{Message: "registration failed"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{Success: true})
}

// Login answers 200 in every case. A wrong password, an unknown user and a
// failed lookup all produce {"success": false}.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusOK, domain.AuthResult{})
		return
	}

	result, err := h.service.Login(r.Context(), ports.LoginInput{
		UserID:   req.UserID,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warn("login failed on lookup", zap.String("user_id", req.UserID), zap.Error(err))
		if timedOut(r) {
			return
		}
		writeJSON(w, http.StatusOK, domain.AuthResult{})
		return
	}

	writeJSON(w, http.StatusOK, result)
}
