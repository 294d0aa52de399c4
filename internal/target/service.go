package target

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rqsn/donasi/internal/apperr"
	"github.com/rqsn/donasi/internal/watch"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=target
type Repository interface {
	// GetTarget returns apperr.ErrNotFound when no target was ever stored.
	GetTarget(ctx context.Context) (*Config, error)
	SaveTarget(ctx context.Context, cfg *Config) error
}

type Service struct {
	repo Repository
	hub  *watch.Hub[int64]
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	s := &Service{
		repo: repo,
		now:  time.Now,
	}
	s.hub = watch.NewHub(s.Get)

	return s
}

// Get returns the target amount. A target that was never stored is created
// with amount 0 on first read.
func (s *Service) Get(ctx context.Context) (int64, error) {
	cfg, err := s.repo.GetTarget(ctx)
	if err == nil {
		return cfg.Amount, nil
	}

	if !errors.Is(err, apperr.ErrNotFound) {
		return 0, fmt.Errorf("getting target: %w", err)
	}

	if err := s.repo.SaveTarget(ctx, &Config{Amount: 0, UpdatedAt: s.now()}); err != nil {
		return 0, fmt.Errorf("initializing target: %w", err)
	}

	slog.InfoContext(ctx, "target initialized")

	return 0, nil
}

// Set replaces the target. The amount must be positive.
func (s *Service) Set(ctx context.Context, amount int64) error {
	if amount <= 0 {
		ve := apperr.NewValidationError()
		ve.Add("amount", "target must be greater than 0")

		return ve
	}

	if err := s.repo.SaveTarget(ctx, &Config{Amount: amount, UpdatedAt: s.now()}); err != nil {
		return fmt.Errorf("saving target: %w", err)
	}

	slog.InfoContext(ctx, "target updated", "amount", amount)

	if err := s.hub.Publish(context.WithoutCancel(ctx)); err != nil {
		slog.ErrorContext(ctx, "failed to publish target", "error", err)
	}

	return nil
}

// Subscribe streams the target: the current value first, then every change.
func (s *Service) Subscribe(ctx context.Context) (*watch.Subscription[int64], error) {
	sub, err := s.hub.Subscribe(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscribing to target: %w", err)
	}

	return sub, nil
}

// Refresh republishes the stored target after an out-of-process change.
func (s *Service) Refresh(ctx context.Context) error {
	return s.hub.Publish(ctx)
}
