package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"wonderscape/internal/common"
)

// Handler exposes registration, login and the current profile over REST.
type Handler struct {
	userService UserService
	log         zerolog.Logger
}

func NewHandler(userService UserService, log zerolog.Logger) *Handler {
	return &Handler{userService: userService, log: log}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token  string `json:"token"`
	UserID uint64 `json:"userId"`
	Email  string `json:"email"`
}

type ProfileResponse struct {
	UserID uint64 `json:"userId"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/me", h.Me).Methods(http.MethodGet)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, common.CodeValidation, "invalid request body")
		return
	}

	user, token, err := h.userService.RegisterUser(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, AuthResponse{Token: token, UserID: user.UserID, Email: user.Email})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, common.CodeValidation, "invalid request body")
		return
	}

	user, token, err := h.userService.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, AuthResponse{Token: token, UserID: user.UserID, Email: user.Email})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := common.RequireUser(r.Context())
	if err != nil {
		h.writeErr(w, err)
		return
	}

	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, ProfileResponse{UserID: user.UserID, Email: user.Email, Status: user.Status})
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		common.WriteError(w, http.StatusBadRequest, common.CodeValidation, err.Error())
	case errors.Is(err, ErrEmailTaken):
		common.WriteError(w, http.StatusConflict, common.CodeConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUserInactive), errors.Is(err, common.ErrUnauthenticated):
		common.WriteError(w, http.StatusUnauthorized, common.CodeUnauthenticated, err.Error())
	default:
		h.log.Error().Err(err).Msg("user request failed")
		common.WriteError(w, http.StatusInternalServerError, common.CodeInternal, "internal error")
	}
}
