package repository

import (
	"context"

	"github.com/northarc/paylens/internal/domain"
)

// Memory is a Source over a fixed slice of payments. The collection is
// set once at construction and never mutated afterwards.
type Memory struct {
	payments []domain.Payment
}

// NewMemory returns an in-memory source over the given payments.
func NewMemory(payments []domain.Payment) *Memory {
	return &Memory{payments: payments}
}

// FetchAll returns a fresh copy of the collection so callers can sort
// their result without touching the shared snapshot.
func (m *Memory) FetchAll(_ context.Context) ([]domain.Payment, error) {
	out := make([]domain.Payment, len(m.payments))
	copy(out, m.payments)
	return out, nil
}
