// Package memstore holds donations and the target in process memory. It backs
// local runs and tests; state is lost on exit.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/rqsn/donasi/internal/apperr"
	"github.com/rqsn/donasi/internal/donation"
	"github.com/rqsn/donasi/internal/target"
)

type DonationStore struct {
	mu        sync.RWMutex
	donations map[uuid.UUID]donation.Donation
}

func NewDonationStore() *DonationStore {
	return &DonationStore{donations: make(map[uuid.UUID]donation.Donation)}
}

func (s *DonationStore) CreateDonation(_ context.Context, d *donation.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	s.donations[d.ID] = clone(d)

	return nil
}

func (s *DonationStore) GetDonation(_ context.Context, id uuid.UUID) (*donation.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.donations[id]
	if !ok {
		return nil, fmt.Errorf("donation %s: %w", id, apperr.ErrNotFound)
	}

	return new(clone(&d)), nil
}

// ListDonations returns the newest donations first.
func (s *DonationStore) ListDonations(_ context.Context, filter donation.ListFilter) ([]*donation.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*donation.Donation, 0, len(s.donations))

	for _, d := range s.donations {
		if filter.Status != nil && d.Status != *filter.Status {
			continue
		}

		out = append(out, new(clone(&d)))
	}

	slices.SortFunc(out, func(a, b *donation.Donation) int {
		if c := b.SubmittedAt.Compare(a.SubmittedAt); c != 0 {
			return c
		}

		return slices.Compare(a.ID[:], b.ID[:])
	})

	return out, nil
}

func (s *DonationStore) UpdateStatus(_ context.Context, id uuid.UUID, status donation.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.donations[id]
	if !ok {
		return fmt.Errorf("donation %s: %w", id, apperr.ErrNotFound)
	}

	d.Status = status
	s.donations[id] = d

	return nil
}

func (s *DonationStore) DeleteDonation(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.donations[id]; !ok {
		return fmt.Errorf("donation %s: %w", id, apperr.ErrNotFound)
	}

	delete(s.donations, id)

	return nil
}

func clone(d *donation.Donation) donation.Donation {
	c := *d
	if d.ProofReference != nil {
		c.ProofReference = new(*d.ProofReference)
	}

	return c
}

type TargetStore struct {
	mu  sync.RWMutex
	cfg *target.Config
}

func NewTargetStore() *TargetStore {
	return &TargetStore{}
}

func (s *TargetStore) GetTarget(context.Context) (*target.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cfg == nil {
		return nil, apperr.ErrNotFound
	}

	return new(*s.cfg), nil
}

func (s *TargetStore) SaveTarget(_ context.Context, cfg *target.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = new(*cfg)

	return nil
}
