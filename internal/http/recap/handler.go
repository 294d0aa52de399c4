package recap

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rqsn/donasi/internal/auth"
	"github.com/rqsn/donasi/internal/document"
	"github.com/rqsn/donasi/internal/donation"
	"github.com/rqsn/donasi/internal/http/respond"
	"github.com/rqsn/donasi/internal/target"
)

type Handler struct {
	ledger  *donation.Service
	targets *target.Service
	docs    *document.Generator
}

func NewHandler(ledger *donation.Service, targets *target.Service, docs *document.Generator) *Handler {
	return &Handler{ledger: ledger, targets: targets, docs: docs}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(auth.AdminOnly).Get("/", h.recap)
}

func (h *Handler) recap(w http.ResponseWriter, r *http.Request) {
	records, err := h.ledger.List(r.Context(), donation.ListFilter{})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	amount, err := h.targets.Get(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	a, err := h.docs.Recap(records, amount)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Artifact(w, a)
}
