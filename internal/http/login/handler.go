package login

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rqsn/donasi/internal/auth"
	"github.com/rqsn/donasi/internal/http/respond"
)

type Handler struct {
	auth *auth.Authenticator
}

func NewHandler(a *auth.Authenticator) *Handler {
	return &Handler{auth: a}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	token, expires, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires})
}
