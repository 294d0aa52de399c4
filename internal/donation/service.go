package donation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rqsn/donasi/internal/watch"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=donation
type Repository interface {
	CreateDonation(ctx context.Context, d *Donation) error
	GetDonation(ctx context.Context, id uuid.UUID) (*Donation, error)
	ListDonations(ctx context.Context, filter ListFilter) ([]*Donation, error)
	// UpdateStatus returns apperr.ErrNotFound when no donation has the id.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	// DeleteDonation hard-deletes the row and returns apperr.ErrNotFound when
	// no donation has the id.
	DeleteDonation(ctx context.Context, id uuid.UUID) error
}

// Service is the ledger: it owns the donation lifecycle and publishes the full
// set of donations after every committed mutation.
type Service struct {
	repo Repository
	hub  *watch.Hub[[]*Donation]
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	s := &Service{
		repo: repo,
		now:  time.Now,
	}
	s.hub = watch.NewHub(func(ctx context.Context) ([]*Donation, error) {
		return s.repo.ListDonations(ctx, ListFilter{})
	})

	return s
}

type CreateParams struct {
	DonorName      string
	Phone          string
	Amount         int64
	Method         Method
	ProofReference *string
}

type ListFilter struct {
	Status *Status
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Donation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	d := &Donation{
		DonorName:      strings.TrimSpace(params.DonorName),
		Phone:          strings.TrimSpace(params.Phone),
		Amount:         params.Amount,
		Method:         params.Method,
		SubmittedAt:    s.now(),
		Status:         InitialStatus(params.Amount),
		ProofReference: params.ProofReference,
	}

	if d.Method == MethodGateway {
		d.ProofReference = nil
	}

	if err := s.repo.CreateDonation(ctx, d); err != nil {
		return nil, fmt.Errorf("creating donation: %w", err)
	}

	s.publish(ctx)

	return d, nil
}

// Approve marks the donation approved. Approving an approved donation is a no-op.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.UpdateStatus(ctx, id, StatusApproved); err != nil {
		return fmt.Errorf("approving donation %s: %w", id, err)
	}

	slog.InfoContext(ctx, "donation approved", "id", id)
	s.publish(ctx)

	return nil
}

// Reject permanently deletes the donation. It cannot be undone.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteDonation(ctx, id); err != nil {
		return fmt.Errorf("rejecting donation %s: %w", id, err)
	}

	slog.InfoContext(ctx, "donation rejected", "id", id)
	s.publish(ctx)

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Donation, error) {
	return s.repo.GetDonation(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Donation, error) {
	return s.repo.ListDonations(ctx, filter)
}

// Subscribe streams the full set of donations: the current set first, then
// one snapshot per committed mutation. Unread snapshots are coalesced.
func (s *Service) Subscribe(ctx context.Context) (*watch.Subscription[[]*Donation], error) {
	sub, err := s.hub.Subscribe(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscribing to donations: %w", err)
	}

	return sub, nil
}

// Refresh republishes the current set. It is called when a change was
// committed by another process.
func (s *Service) Refresh(ctx context.Context) error {
	return s.hub.Publish(ctx)
}

// publish never fails the mutation that triggered it: the change is already
// committed and the next successful publish carries it.
func (s *Service) publish(ctx context.Context) {
	if err := s.hub.Publish(context.WithoutCancel(ctx)); err != nil {
		slog.ErrorContext(ctx, "failed to publish donations snapshot", "error", err)
	}
}
