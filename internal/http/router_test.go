package http_test

import (
	"archive/zip"
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rqsn/donasi/internal/aggregate"
	"github.com/rqsn/donasi/internal/auth"
	"github.com/rqsn/donasi/internal/document"
	"github.com/rqsn/donasi/internal/donation"
	"github.com/rqsn/donasi/internal/export"
	donasiHttp "github.com/rqsn/donasi/internal/http"
	donationHandler "github.com/rqsn/donasi/internal/http/donation"
	exportHandler "github.com/rqsn/donasi/internal/http/export"
	"github.com/rqsn/donasi/internal/http/login"
	"github.com/rqsn/donasi/internal/http/recap"
	"github.com/rqsn/donasi/internal/http/summary"
	targetHandler "github.com/rqsn/donasi/internal/http/target"
	"github.com/rqsn/donasi/internal/importer"
	"github.com/rqsn/donasi/internal/memstore"
	"github.com/rqsn/donasi/internal/notify"
	"github.com/rqsn/donasi/internal/target"
)

type testServer struct {
	*httptest.Server
	tracker *aggregate.Tracker
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)

	authenticator, err := auth.NewAuthenticator(auth.Options{
		Secret:            "test",
		AdminEmail:        "admin@rqsn.org",
		AdminPasswordHash: string(hash),
	})
	require.NoError(t, err)

	var (
		ledger   = donation.NewService(memstore.NewDonationStore())
		targets  = target.NewService(memstore.NewTargetStore())
		tracker  = aggregate.NewTracker(ledger, targets)
		docs     = document.NewGenerator(document.DefaultOrganization(), "")
		notifier = notify.NewNotifier(notify.LogPublisher{}, "6281296337953")
		imp      = importer.NewService(ledger)
	)

	go func() { _ = tracker.Run(ctx) }()
	<-tracker.Ready()

	router := donasiHttp.New(authenticator, []string{"*"}, donasiHttp.Handlers{
		Login:     login.NewHandler(authenticator),
		Donations: donationHandler.NewHandler(ledger, notifier, docs, imp, 1<<20),
		Target:    targetHandler.NewHandler(targets),
		Summary:   summary.NewHandler(tracker),
		Recap:     recap.NewHandler(ledger, targets, docs),
		Export:    exportHandler.NewHandler(export.NewService(ledger, targets, docs)),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, tracker: tracker}
}

func (s *testServer) do(t *testing.T, method, path string, body any, admin bool) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, s.URL+path, &buf)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if admin {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func (s *testServer) login(t *testing.T) {
	t.Helper()

	resp := s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "admin@rqsn.org",
		"password": "rahasia",
	}, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)

	s.token = body.Token
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))

	return v
}

type created struct {
	Donation struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"donation"`
	WhatsApp struct {
		Link string `json:"link"`
	} `json:"whatsapp"`
}

func TestDonationFlow(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/v1/donations", map[string]any{
		"donor_name": "Ahmad",
		"phone":      "+6281234567890",
		"amount":     50_000,
		"method":     "qris",
	}, false)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	small := decode[created](t, resp)
	assert.Equal(t, "approved", small.Donation.Status)
	assert.True(t, strings.HasPrefix(small.WhatsApp.Link, "https://wa.me/6281296337953?text="))

	resp = s.do(t, http.MethodPost, "/api/v1/donations", map[string]any{
		"donor_name": "Siti",
		"phone":      "+6281234567891",
		"amount":     2_000_000,
		"method":     "transfer",
	}, false)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	large := decode[created](t, resp)
	assert.Equal(t, "pending", large.Donation.Status)

	resp = s.do(t, http.MethodGet, "/api/v1/donations", nil, false)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, http.MethodPut, "/api/v1/target", map[string]int64{"amount": 10_000_000}, false)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	s.login(t)

	resp = s.do(t, http.MethodGet, "/api/v1/donations?status=pending", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]map[string]any](t, resp), 1)

	resp = s.do(t, http.MethodPut, "/api/v1/target", map[string]int64{"amount": 10_000_000}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/v1/donations/"+large.Donation.ID+"/approve", nil, true)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	require.Eventually(t, func() bool {
		return s.tracker.Current().TotalApproved == 2_050_000 && s.tracker.Current().Target == 10_000_000
	}, 5*time.Second, 10*time.Millisecond)

	resp = s.do(t, http.MethodGet, "/api/v1/summary", nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	snap := decode[aggregate.Snapshot](t, resp)
	assert.InDelta(t, 20.5, snap.ProgressPercent, 1e-9)

	resp = s.do(t, http.MethodGet, "/api/v1/donations/"+large.Donation.ID+"/invoice", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, document.ContentTypePDF, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Invoice_Siti_")

	resp = s.do(t, http.MethodGet, "/api/v1/donations/"+small.Donation.ID+"/certificate", nil, true)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/v1/recap", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Rekapitulasi_Donasi_")

	resp = s.do(t, http.MethodDelete, "/api/v1/donations/"+small.Donation.ID, nil, true)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.do(t, http.MethodDelete, "/api/v1/donations/"+small.Donation.ID, nil, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateDonation_Validation(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/v1/donations", map[string]any{
		"donor_name": "",
		"phone":      "0812",
		"amount":     500,
		"method":     "cash",
	}, false)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[struct {
		Fields map[string]string `json:"fields"`
	}](t, resp)
	assert.Len(t, body.Fields, 4)
}

func TestTarget(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	resp := s.do(t, http.MethodGet, "/api/v1/target", nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]int64{"amount": 0}, decode[map[string]int64](t, resp))

	resp = s.do(t, http.MethodPut, "/api/v1/target", map[string]int64{"amount": 0}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "admin@rqsn.org",
		"password": "salah",
	}, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestImport(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "donatur.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Nama;Jumlah;Nomor Telepon;Metode\nAhmad;Rp 50.000;+6281234567890;Qris\nBudi;Rp 500;+6281234567892;Qris\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, s.URL+"/api/v1/donations/import", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[struct {
		Imported int `json:"imported"`
		Failures []struct {
			Line int `json:"line"`
		} `json:"failures"`
	}](t, resp)
	assert.Equal(t, 1, body.Imported)
	require.Len(t, body.Failures, 1)
	assert.Equal(t, 3, body.Failures[0].Line)
}

func TestSummaryStream(t *testing.T) {
	s := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL+"/api/v1/summary/stream", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan aggregate.Snapshot, 8)

	go func() {
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			if data, ok := strings.CutPrefix(sc.Text(), "data: "); ok {
				var snap aggregate.Snapshot
				if json.Unmarshal([]byte(data), &snap) == nil {
					events <- snap
				}
			}
		}
	}()

	first := <-events
	assert.Zero(t, first.TotalApproved)

	r := s.do(t, http.MethodPost, "/api/v1/donations", map[string]any{
		"donor_name": "Ahmad",
		"phone":      "+6281234567890",
		"amount":     50_000,
		"method":     "qris",
	}, false)
	require.Equal(t, http.StatusCreated, r.StatusCode)

	timeout := time.After(5 * time.Second)

	for {
		select {
		case snap := <-events:
			if snap.TotalApproved == 50_000 {
				return
			}
		case <-timeout:
			t.Fatal("no snapshot with the new donation")
		}
	}
}

func TestExport(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/v1/donations", map[string]any{
		"donor_name": "Siti",
		"phone":      "6281234567890",
		"amount":     250000,
		"method":     "qris",
	}, false)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/v1/export", map[string]bool{"invoices": true}, false)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	s.login(t)

	resp = s.do(t, http.MethodPost, "/api/v1/export", map[string]bool{"invoices": true}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)

	var recaps, invoices int
	var summary bool
	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "Rekapitulasi_Donasi_"):
			recaps++
		case strings.HasPrefix(f.Name, "invoices/"):
			invoices++
		case f.Name == "summary.txt":
			summary = true
		}
	}

	assert.Equal(t, 1, recaps)
	assert.Equal(t, 1, invoices)
	assert.True(t, summary)
}
