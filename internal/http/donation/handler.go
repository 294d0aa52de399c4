package donation

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/rqsn/donasi/internal/auth"
	"github.com/rqsn/donasi/internal/document"
	"github.com/rqsn/donasi/internal/donation"
	"github.com/rqsn/donasi/internal/http/respond"
	"github.com/rqsn/donasi/internal/importer"
	"github.com/rqsn/donasi/internal/notify"
)

type Handler struct {
	ledger    *donation.Service
	notifier  *notify.Notifier
	docs      *document.Generator
	importer  *importer.Service
	maxUpload int64
}

func NewHandler(
	ledger *donation.Service,
	notifier *notify.Notifier,
	docs *document.Generator,
	imp *importer.Service,
	maxUpload int64,
) *Handler {
	return &Handler{
		ledger:    ledger,
		notifier:  notifier,
		docs:      docs,
		importer:  imp,
		maxUpload: maxUpload,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(middleware.AllowContentType("application/json")).Post("/", h.create)

	r.Group(func(r chi.Router) {
		r.Use(auth.AdminOnly)

		r.Get("/", h.list)
		r.Post("/import", h.importSheet)
		r.Get("/{id}", h.get)
		r.Post("/{id}/approve", h.approve)
		r.Delete("/{id}", h.reject)
		r.Get("/{id}/invoice", h.invoice)
		r.Get("/{id}/certificate", h.certificate)
	})
}

type createDonationRequest struct {
	DonorName      string          `json:"donor_name"`
	Phone          string          `json:"phone"`
	Amount         int64           `json:"amount"`
	Method         donation.Method `json:"method"`
	ProofReference *string         `json:"proof_reference"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	d, err := h.ledger.Create(r.Context(), donation.CreateParams{
		DonorName:      req.DonorName,
		Phone:          req.Phone,
		Amount:         req.Amount,
		Method:         req.Method,
		ProofReference: req.ProofReference,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	msg := h.notifier.DonationCreated(r.Context(), d)

	respond.JSON(w, http.StatusCreated, toCreateResponse(d, msg))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := donation.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := donation.Status(s)
		if !status.Valid() {
			respond.BadRequest(w, "status must be pending or approved")
			return
		}

		filter.Status = &status
	}

	ds, err := h.ledger.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(ds))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(d))
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.ledger.Approve(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.ledger.Reject(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) invoice(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}

	a, err := h.docs.Invoice(d)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Artifact(w, a)
}

func (h *Handler) certificate(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}

	a, err := h.docs.Certificate(d)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Artifact(w, a)
}

func (h *Handler) importSheet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		respond.BadRequest(w, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	res, err := h.importer.Import(r.Context(), file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toImportResponse(res))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*donation.Donation, bool) {
	id, ok := parseID(w, r)
	if !ok {
		return nil, false
	}

	d, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return nil, false
	}

	return d, true
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return uuid.Nil, false
	}

	return id, true
}
