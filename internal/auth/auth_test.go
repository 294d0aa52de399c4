package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rqsn/donasi/internal/apperr"
)

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)

	a, err := NewAuthenticator(Options{
		Secret:            "test-secret",
		AdminEmail:        "Admin@RQSN.org",
		AdminPasswordHash: string(hash),
		TokenTTL:          time.Hour,
	})
	require.NoError(t, err)

	return a
}

func TestAuthenticator_Login(t *testing.T) {
	a := newTestAuthenticator(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "Valid", email: "admin@rqsn.org", password: "rahasia"},
		{name: "EmailCaseInsensitive", email: " ADMIN@rqsn.org ", password: "rahasia"},
		{name: "WrongPassword", email: "admin@rqsn.org", password: "salah", wantErr: true},
		{name: "WrongEmail", email: "other@rqsn.org", password: "rahasia", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, expires, err := a.Login(tt.email, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				return
			}

			require.NoError(t, err)
			assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

			id, err := a.Verify(token)
			require.NoError(t, err)
			assert.True(t, id.Admin())
			assert.Equal(t, "admin@rqsn.org", id.Subject)
		})
	}
}

func TestAuthenticator_Verify(t *testing.T) {
	a := newTestAuthenticator(t)

	t.Run("Expired", func(t *testing.T) {
		a.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := a.Issue("admin@rqsn.org", ClassAdmin)
		require.NoError(t, err)

		a.now = time.Now
		_, err = a.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("OtherSecret", func(t *testing.T) {
		other, err := NewAuthenticator(Options{Secret: "other"})
		require.NoError(t, err)

		token, _, err := other.Issue("x", ClassAdmin)
		require.NoError(t, err)

		_, err = a.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := a.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewAuthenticator_RequiresSecret(t *testing.T) {
	_, err := NewAuthenticator(Options{})
	assert.Error(t, err)
}

func TestRequireAdmin(t *testing.T) {
	assert.ErrorIs(t, RequireAdmin(context.Background()), apperr.ErrPermission)

	ctx := WithIdentity(context.Background(), Identity{Subject: "a", Class: ClassAdmin})
	assert.NoError(t, RequireAdmin(ctx))
}

func TestMiddleware(t *testing.T) {
	a := newTestAuthenticator(t)
	adminToken, _, err := a.Issue("admin@rqsn.org", ClassAdmin)
	require.NoError(t, err)

	var seen Identity

	h := a.Middleware(AdminOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "Anonymous", want: http.StatusForbidden},
		{name: "Admin", header: "Bearer " + adminToken, want: http.StatusNoContent},
		{name: "BadToken", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "NotBearer", header: "Basic abc", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}

	assert.Equal(t, ClassAdmin, seen.Class)
}
