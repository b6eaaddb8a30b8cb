// Package repository provides the payment sources the query layer reads
// from: a fixed in-memory collection and a Postgres-backed one.
package repository

import (
	"context"

	"github.com/northarc/paylens/internal/domain"
)

// Source returns the full payment collection. The returned slice carries
// no ordering guarantee; callers that need an order must sort. Each call
// returns a consistent snapshot, and a failure propagates to the caller
// as-is.
type Source interface {
	FetchAll(ctx context.Context) ([]domain.Payment, error)
}
