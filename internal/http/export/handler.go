package export

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rqsn/donasi/internal/auth"
	"github.com/rqsn/donasi/internal/export"
	"github.com/rqsn/donasi/internal/http/respond"
)

type Handler struct {
	svc *export.Service
	now func() time.Time
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(auth.AdminOnly).Post("/", h.download)
}

type exportRequest struct {
	Invoices bool `json:"invoices"`
}

// download streams a zip with the recap, the requested per-donation
// documents and a plain-text summary.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.BadRequest(w, "invalid JSON body")
		return
	}

	tmpDir, err := os.MkdirTemp("", "donasi-export-*")
	if err != nil {
		respond.Error(w, r, fmt.Errorf("creating export directory: %w", err))
		return
	}
	defer os.RemoveAll(tmpDir)

	res, err := h.svc.Export(r.Context(), tmpDir, export.Options{Invoices: req.Invoices})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	summary := h.svc.GenerateSummary(res)
	if err := os.WriteFile(filepath.Join(tmpDir, "summary.txt"), []byte(summary), 0o644); err != nil {
		respond.Error(w, r, fmt.Errorf("writing summary: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"donasi_export_%s.zip\"", h.now().Format("20060102")))

	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	err = filepath.Walk(tmpDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		relPath, _ := filepath.Rel(tmpDir, path)

		zf, err := zipWriter.Create(filepath.ToSlash(relPath))
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(zf, f)

		return err
	})
	if err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
