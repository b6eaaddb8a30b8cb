package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/northarc/paylens/internal/clock"
	"github.com/northarc/paylens/internal/domain"
	"github.com/northarc/paylens/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.April, 10, 12, 0, 0, 0, time.UTC)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func item(t *testing.T, name, regular, final string) domain.PaymentItem {
	t.Helper()
	return domain.PaymentItem{
		Name:         name,
		RegularPrice: dec(t, regular),
		FinalPrice:   dec(t, final),
	}
}

func payment(email string, date time.Time, items ...domain.PaymentItem) domain.Payment {
	return domain.Payment{
		ID:          uuid.New(),
		User:        domain.User{ID: uuid.New(), Email: email},
		PaymentDate: date,
		Items:       items,
	}
}

func newService(payments ...domain.Payment) *QueryService {
	return NewQueryService(repository.NewMemory(payments), clock.NewFixed(testNow))
}

type failingSource struct {
	err error
}

func (f failingSource) FetchAll(context.Context) ([]domain.Payment, error) {
	return nil, f.err
}

func TestPaymentsSortedByDate(t *testing.T) {
	sameDate := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	p1 := payment("a@example.com", time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC))
	p2 := payment("b@example.com", sameDate)
	p3 := payment("c@example.com", sameDate)
	p4 := payment("d@example.com", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	svc := newService(p1, p2, p3, p4)

	asc, err := svc.PaymentsSortedByDateAsc(context.Background())
	require.NoError(t, err)
	// Stable: p2 stays before p3 on equal dates.
	require.Equal(t, []domain.Payment{p4, p2, p3, p1}, asc)

	desc, err := svc.PaymentsSortedByDateDesc(context.Background())
	require.NoError(t, err)

	// Descending is the exact element-wise reverse, tie order included.
	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
}

func TestPaymentsSortedByItemCount(t *testing.T) {
	p1 := payment("a@example.com", testNow,
		item(t, "A", "1.00", "1.00"), item(t, "B", "1.00", "1.00"))
	p2 := payment("b@example.com", testNow)
	p3 := payment("c@example.com", testNow, item(t, "C", "1.00", "1.00"))
	p4 := payment("d@example.com", testNow, item(t, "D", "1.00", "1.00"))

	svc := newService(p1, p2, p3, p4)

	asc, err := svc.PaymentsSortedByItemCountAsc(context.Background())
	require.NoError(t, err)
	// Stable: p3 stays before p4 on equal counts.
	require.Equal(t, []domain.Payment{p2, p3, p4, p1}, asc)

	desc, err := svc.PaymentsSortedByItemCountDesc(context.Background())
	require.NoError(t, err)
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
}

func TestPaymentsForMonth(t *testing.T) {
	march2024 := payment("a@example.com", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	march2023 := payment("b@example.com", time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC))
	april2024 := payment("c@example.com", time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))

	svc := newService(march2024, march2023, april2024)

	got, err := svc.PaymentsForMonth(context.Background(), domain.YearMonth{Year: 2024, Month: time.March})
	require.NoError(t, err)

	// The same month in a different year must not match.
	require.Equal(t, []domain.Payment{march2024}, got)
}

func TestPaymentsForCurrentMonth(t *testing.T) {
	current := payment("a@example.com", time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC))
	past := payment("b@example.com", time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC))

	svc := newService(past, current)

	got, err := svc.PaymentsForCurrentMonth(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.Payment{current}, got)
}

func TestPaymentsForLastDays(t *testing.T) {
	atNow := payment("a@example.com", testNow)
	atLowerBound := payment("b@example.com", testNow.AddDate(0, 0, -7))
	justInsideFrom := payment("c@example.com", testNow.AddDate(0, 0, -7).Add(time.Nanosecond))
	justBeforeNow := payment("d@example.com", testNow.Add(-time.Nanosecond))
	tooOld := payment("e@example.com", testNow.AddDate(0, 0, -8))

	svc := newService(atNow, atLowerBound, justInsideFrom, justBeforeNow, tooOld)

	got, err := svc.PaymentsForLastDays(context.Background(), 7)
	require.NoError(t, err)

	// Both bounds are exclusive.
	require.Equal(t, []domain.Payment{justInsideFrom, justBeforeNow}, got)
}

func TestPaymentsForLastDaysNegative(t *testing.T) {
	svc := newService(
		payment("a@example.com", testNow.AddDate(0, 0, -1)),
		payment("b@example.com", testNow.AddDate(0, 0, 1)),
	)

	got, err := svc.PaymentsForLastDays(context.Background(), -5)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestPaymentsWithOneItem(t *testing.T) {
	one := payment("a@example.com", testNow, item(t, "A", "10.00", "8.00"))
	alsoOne := payment("b@example.com", testNow, item(t, "B", "5.00", "5.00"))
	two := payment("c@example.com", testNow,
		item(t, "C", "1.00", "1.00"), item(t, "D", "1.00", "1.00"))
	none := payment("d@example.com", testNow)

	svc := newService(one, two, alsoOne, none)

	got, err := svc.PaymentsWithOneItem(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.Payment{one, alsoOne}, got)
}

func TestProductsSoldInCurrentMonth(t *testing.T) {
	svc := newService(
		payment("a@example.com", time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC),
			item(t, "Keyboard", "100.00", "90.00"),
			item(t, "Mouse", "40.00", "40.00")),
		payment("b@example.com", time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC),
			item(t, "Keyboard", "100.00", "100.00")),
		payment("c@example.com", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
			item(t, "Monitor", "300.00", "250.00")),
	)

	got, err := svc.ProductsSoldInCurrentMonth(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Keyboard", "Mouse"}, got)
}

func TestTotalAndDiscountForMonth(t *testing.T) {
	// The worked example: one March payment at 10.00/8.00, one April
	// payment at 5.00/5.00.
	svc := newService(
		payment("a@example.com", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			item(t, "A", "10.00", "8.00")),
		payment("b@example.com", time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			item(t, "B", "5.00", "5.00")),
	)
	march := domain.YearMonth{Year: 2024, Month: time.March}

	total, err := svc.TotalForMonth(context.Background(), march)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec(t, "8.00")), "total = %s", total)

	discount, err := svc.DiscountForMonth(context.Background(), march)
	require.NoError(t, err)
	assert.True(t, discount.Equal(dec(t, "2.00")), "discount = %s", discount)
}

func TestTotalForMonthEmpty(t *testing.T) {
	svc := newService(payment("a@example.com", testNow))

	total, err := svc.TotalForMonth(context.Background(), domain.YearMonth{Year: 1999, Month: time.May})
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	// A payment with zero items contributes exactly zero.
	total, err = svc.TotalForMonth(context.Background(), domain.YearMonthOf(testNow))
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestDiscountForMonthKeepsNegatives(t *testing.T) {
	// Final above regular: the per-item discount is negative and summed
	// as-is.
	svc := newService(
		payment("a@example.com", testNow,
			item(t, "A", "10.00", "12.00"),
			item(t, "B", "10.00", "9.00")),
	)

	discount, err := svc.DiscountForMonth(context.Background(), domain.YearMonthOf(testNow))
	require.NoError(t, err)
	assert.True(t, discount.Equal(dec(t, "-1.00")), "discount = %s", discount)
}

func TestTotalMatchesPerPaymentSum(t *testing.T) {
	payments := []domain.Payment{
		payment("a@example.com", testNow,
			item(t, "A", "10.10", "10.10"), item(t, "B", "0.01", "0.01")),
		payment("b@example.com", testNow, item(t, "C", "99.99", "89.99")),
		payment("c@example.com", testNow.AddDate(0, -1, 0), item(t, "D", "5.00", "5.00")),
	}
	svc := newService(payments...)
	ym := domain.YearMonthOf(testNow)

	total, err := svc.TotalForMonth(context.Background(), ym)
	require.NoError(t, err)

	monthly, err := svc.PaymentsForMonth(context.Background(), ym)
	require.NoError(t, err)

	perPayment := decimal.Zero
	for _, p := range monthly {
		perPayment = perPayment.Add(p.Value())
	}
	assert.True(t, total.Equal(perPayment), "flat sum %s != per-payment sum %s", total, perPayment)
}

func TestItemsForUserEmail(t *testing.T) {
	first := payment("buyer@example.com", testNow,
		item(t, "A", "10.00", "8.00"), item(t, "B", "5.00", "5.00"))
	second := payment("buyer@example.com", testNow.AddDate(0, 0, 1),
		item(t, "A", "10.00", "10.00"))
	other := payment("other@example.com", testNow, item(t, "C", "1.00", "1.00"))

	svc := newService(first, other, second)

	items, err := svc.ItemsForUserEmail(context.Background(), "buyer@example.com")
	require.NoError(t, err)

	// Payment order then item order, duplicates kept.
	require.Equal(t, []domain.PaymentItem{first.Items[0], first.Items[1], second.Items[0]}, items)
}

func TestItemsForUserEmailNoMatch(t *testing.T) {
	svc := newService(payment("buyer@example.com", testNow, item(t, "A", "1.00", "1.00")))

	items, err := svc.ItemsForUserEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	require.Empty(t, items)

	// Matching is case-sensitive.
	items, err = svc.ItemsForUserEmail(context.Background(), "Buyer@example.com")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestPaymentsWithValueOver(t *testing.T) {
	exactly := payment("a@example.com", testNow,
		item(t, "A", "60.00", "60.00"), item(t, "B", "40.00", "40.00"))
	oneCentAbove := payment("b@example.com", testNow, item(t, "C", "100.01", "100.01"))
	below := payment("c@example.com", testNow, item(t, "D", "99.99", "99.99"))

	svc := newService(exactly, oneCentAbove, below)

	got, err := svc.PaymentsWithValueOver(context.Background(), 100)
	require.NoError(t, err)

	// A sum equal to the threshold is excluded; one cent above is in.
	require.Equal(t, []domain.Payment{oneCentAbove}, got)
}

func TestQueriesAreIdempotent(t *testing.T) {
	svc := newService(
		payment("a@example.com", testNow.AddDate(0, 0, -3), item(t, "A", "10.00", "8.00")),
		payment("b@example.com", testNow.AddDate(0, 0, -1), item(t, "B", "5.00", "5.00")),
	)
	ctx := context.Background()

	first, err := svc.PaymentsSortedByDateAsc(ctx)
	require.NoError(t, err)
	second, err := svc.PaymentsSortedByDateAsc(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	t1, err := svc.TotalForMonth(ctx, domain.YearMonthOf(testNow))
	require.NoError(t, err)
	t2, err := svc.TotalForMonth(ctx, domain.YearMonthOf(testNow))
	require.NoError(t, err)
	assert.True(t, t1.Equal(t2))
}

func TestSourceErrorPropagates(t *testing.T) {
	cause := errors.New("source down")
	svc := NewQueryService(failingSource{err: cause}, clock.NewFixed(testNow))
	ctx := context.Background()

	_, err := svc.PaymentsSortedByDateAsc(ctx)
	require.ErrorIs(t, err, cause)

	_, err = svc.TotalForMonth(ctx, domain.YearMonthOf(testNow))
	require.ErrorIs(t, err, cause)

	_, err = svc.PaymentsForLastDays(ctx, 7)
	require.ErrorIs(t, err, cause)
}
