package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/northarc/paylens/internal/clock"
	"github.com/northarc/paylens/internal/domain"
	"github.com/northarc/paylens/internal/repository"
	"github.com/shopspring/decimal"
)

// QueryService answers analytical queries over the full payment
// collection. It holds no state of its own: every call fetches a fresh
// snapshot from the source and computes its result from scratch, so
// repeated calls against an unchanged source and clock return equal
// results.
type QueryService struct {
	source repository.Source
	clock  clock.Provider
}

func NewQueryService(source repository.Source, clock clock.Provider) *QueryService {
	return &QueryService{source: source, clock: clock}
}

func (s *QueryService) allPayments(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch payments: %w", err)
	}
	return payments, nil
}

// PaymentsSortedByDateAsc returns all payments ordered by payment date,
// oldest first. The sort is stable: payments with equal dates keep their
// source order.
func (s *QueryService) PaymentsSortedByDateAsc(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.allPayments(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].PaymentDate.Before(payments[j].PaymentDate)
	})
	return payments, nil
}

// PaymentsSortedByDateDesc returns the exact element-wise reverse of
// PaymentsSortedByDateAsc, tie order included.
func (s *QueryService) PaymentsSortedByDateDesc(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.PaymentsSortedByDateAsc(ctx)
	if err != nil {
		return nil, err
	}
	reverse(payments)
	return payments, nil
}

// PaymentsSortedByItemCountAsc returns all payments ordered by the
// number of line items, fewest first.
func (s *QueryService) PaymentsSortedByItemCountAsc(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.allPayments(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].ItemCount() < payments[j].ItemCount()
	})
	return payments, nil
}

// PaymentsSortedByItemCountDesc returns the exact reverse of
// PaymentsSortedByItemCountAsc.
func (s *QueryService) PaymentsSortedByItemCountDesc(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.PaymentsSortedByItemCountAsc(ctx)
	if err != nil {
		return nil, err
	}
	reverse(payments)
	return payments, nil
}

// PaymentsForMonth returns payments whose date falls in the given
// year-month, in source order. Year and month must both match.
func (s *QueryService) PaymentsForMonth(ctx context.Context, ym domain.YearMonth) ([]domain.Payment, error) {
	payments, err := s.allPayments(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Payment, 0)
	for _, p := range payments {
		if ym.Contains(p.PaymentDate) {
			result = append(result, p)
		}
	}
	return result, nil
}

// PaymentsForCurrentMonth returns payments for the clock's current
// year-month, read once per call.
func (s *QueryService) PaymentsForCurrentMonth(ctx context.Context) ([]domain.Payment, error) {
	return s.PaymentsForMonth(ctx, s.clock.CurrentYearMonth())
}

// PaymentsForLastDays returns payments strictly inside the window
// (now-days, now). Both bounds are exclusive: a payment stamped exactly
// at now, or exactly days ago, is not included. A negative day count
// inverts the window and matches nothing.
func (s *QueryService) PaymentsForLastDays(ctx context.Context, days int) ([]domain.Payment, error) {
	payments, err := s.allPayments(ctx)
	if err != nil {
		return nil, err
	}

	to := s.clock.Now()
	from := to.AddDate(0, 0, -days)

	result := make([]domain.Payment, 0)
	for _, p := range payments {
		if p.PaymentDate.After(from) && p.PaymentDate.Before(to) {
			result = append(result, p)
		}
	}
	return result, nil
}

// PaymentsWithOneItem returns the set of payments holding exactly one
// line item, deduplicated by payment ID in first-seen order.
func (s *QueryService) PaymentsWithOneItem(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.allPayments(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{})
	result := make([]domain.Payment, 0)
	for _, p := range payments {
		if p.ItemCount() != 1 {
			continue
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		result = append(result, p)
	}
	return result, nil
}

// ProductsSoldInCurrentMonth returns the distinct product names sold in
// the current month, in first-seen order.
func (s *QueryService) ProductsSoldInCurrentMonth(ctx context.Context) ([]string, error) {
	payments, err := s.PaymentsForCurrentMonth(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	products := make([]string, 0)
	for _, p := range payments {
		for _, item := range p.Items {
			if _, ok := seen[item.Name]; ok {
				continue
			}
			seen[item.Name] = struct{}{}
			products = append(products, item.Name)
		}
	}
	return products, nil
}

// TotalForMonth returns the exact sum of final prices over all line
// items sold in the given month. An empty month sums to zero.
func (s *QueryService) TotalForMonth(ctx context.Context, ym domain.YearMonth) (decimal.Decimal, error) {
	payments, err := s.PaymentsForMonth(ctx, ym)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range payments {
		for _, item := range p.Items {
			total = total.Add(item.FinalPrice)
		}
	}
	return total, nil
}

// DiscountForMonth returns the exact sum of per-item discounts
// (regular minus final) over the given month. Negative per-item
// discounts are summed as-is.
func (s *QueryService) DiscountForMonth(ctx context.Context, ym domain.YearMonth) (decimal.Decimal, error) {
	payments, err := s.PaymentsForMonth(ctx, ym)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range payments {
		for _, item := range p.Items {
			total = total.Add(item.Discount())
		}
	}
	return total, nil
}

// ItemsForUserEmail returns every line item bought by the user with the
// given email, matched exactly. Payment order and item order within each
// payment are preserved; nothing is deduplicated. An unknown email
// yields an empty list.
func (s *QueryService) ItemsForUserEmail(ctx context.Context, email string) ([]domain.PaymentItem, error) {
	payments, err := s.allPayments(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.PaymentItem, 0)
	for _, p := range payments {
		if p.User.Email != email {
			continue
		}
		items = append(items, p.Items...)
	}
	return items, nil
}

// PaymentsWithValueOver returns the set of payments whose summed final
// price strictly exceeds the threshold. A payment summing to exactly
// the threshold is excluded.
func (s *QueryService) PaymentsWithValueOver(ctx context.Context, threshold int) ([]domain.Payment, error) {
	payments, err := s.allPayments(ctx)
	if err != nil {
		return nil, err
	}

	limit := decimal.NewFromInt(int64(threshold))
	seen := make(map[uuid.UUID]struct{})
	result := make([]domain.Payment, 0)
	for _, p := range payments {
		if !p.Value().GreaterThan(limit) {
			continue
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		result = append(result, p)
	}
	return result, nil
}

func reverse(payments []domain.Payment) {
	for i, j := 0, len(payments)-1; i < j; i, j = i+1, j-1 {
		payments[i], payments[j] = payments[j], payments[i]
	}
}
