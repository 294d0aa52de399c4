package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rqsn/donasi/internal/apperr"
	"github.com/rqsn/donasi/internal/document"
)

func TestError(t *testing.T) {
	ve := apperr.NewValidationError()
	ve.Add("amount", "too small")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantFields bool
	}{
		{"Validation", fmt.Errorf("creating: %w", ve), http.StatusBadRequest, true},
		{"NotFound", fmt.Errorf("donation x: %w", apperr.ErrNotFound), http.StatusNotFound, false},
		{"Permission", apperr.ErrPermission, http.StatusForbidden, false},
		{"Integration", &apperr.IntegrationError{Op: "insert", Err: errors.New("down")}, http.StatusServiceUnavailable, false},
		{"Generation", &apperr.GenerationError{Document: "invoice", Err: errors.New("x")}, http.StatusInternalServerError, false},
		{"Certificate", document.ErrCertificateUnavailable, http.StatusUnprocessableEntity, false},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, tt.wantFields, len(body.Fields) > 0)
		})
	}
}

func TestArtifact(t *testing.T) {
	rec := httptest.NewRecorder()
	Artifact(rec, &document.Artifact{Filename: "Invoice_Siti_1.pdf", ContentType: document.ContentTypePDF, Content: []byte("%PDF-1.3")})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Invoice_Siti_1.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}
