package target

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rqsn/donasi/internal/auth"
	"github.com/rqsn/donasi/internal/http/respond"
	"github.com/rqsn/donasi/internal/target"
)

type Handler struct {
	svc *target.Service
}

func NewHandler(svc *target.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.With(auth.AdminOnly).Put("/", h.set)
}

type targetBody struct {
	Amount int64 `json:"amount"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	amount, err := h.svc.Get(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, targetBody{Amount: amount})
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req targetBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	if err := h.svc.Set(r.Context(), req.Amount); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, req)
}
