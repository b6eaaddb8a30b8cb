package service

import (
	"context"

	"github.com/northarc/paylens/internal/domain"
	"github.com/shopspring/decimal"
)

// MonthReport is an aggregate view of one calendar month.
type MonthReport struct {
	Month        domain.YearMonth
	PaymentCount int
	Total        decimal.Decimal
	Discount     decimal.Decimal
	Products     []string
}

// Reports assembles month-level summaries on top of QueryService.
type Reports struct {
	queries *QueryService
}

func NewReports(queries *QueryService) *Reports {
	return &Reports{queries: queries}
}

// MonthReport builds the summary for the given month.
func (r *Reports) MonthReport(ctx context.Context, ym domain.YearMonth) (MonthReport, error) {
	payments, err := r.queries.PaymentsForMonth(ctx, ym)
	if err != nil {
		return MonthReport{}, err
	}
	return buildMonthReport(ym, payments), nil
}

// CurrentMonthReport builds the summary for the clock's current month.
// The year-month is read from the clock once, so the report cannot tear
// across a month boundary.
func (r *Reports) CurrentMonthReport(ctx context.Context) (MonthReport, error) {
	return r.MonthReport(ctx, r.queries.clock.CurrentYearMonth())
}

func buildMonthReport(ym domain.YearMonth, payments []domain.Payment) MonthReport {
	total := decimal.Zero
	discount := decimal.Zero
	seen := make(map[string]struct{})
	products := make([]string, 0)

	for _, p := range payments {
		for _, item := range p.Items {
			total = total.Add(item.FinalPrice)
			discount = discount.Add(item.Discount())
			if _, ok := seen[item.Name]; !ok {
				seen[item.Name] = struct{}{}
				products = append(products, item.Name)
			}
		}
	}

	return MonthReport{
		Month:        ym,
		PaymentCount: len(payments),
		Total:        total,
		Discount:     discount,
		Products:     products,
	}
}
