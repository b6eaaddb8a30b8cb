package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestPaymentValue(t *testing.T) {
	p := Payment{
		Items: []PaymentItem{
			{Name: "A", RegularPrice: mustDec(t, "10.00"), FinalPrice: mustDec(t, "8.00")},
			{Name: "B", RegularPrice: mustDec(t, "0.01"), FinalPrice: mustDec(t, "0.01")},
		},
	}
	assert.True(t, p.Value().Equal(mustDec(t, "8.01")), "value = %s", p.Value())
}

func TestPaymentValueNoItems(t *testing.T) {
	assert.True(t, Payment{}.Value().IsZero())
	assert.Equal(t, 0, Payment{}.ItemCount())
}

func TestPaymentItemDiscount(t *testing.T) {
	discounted := PaymentItem{RegularPrice: mustDec(t, "10.00"), FinalPrice: mustDec(t, "8.00")}
	assert.True(t, discounted.Discount().Equal(mustDec(t, "2.00")))

	// Final above regular gives a negative discount, not zero.
	markedUp := PaymentItem{RegularPrice: mustDec(t, "10.00"), FinalPrice: mustDec(t, "12.00")}
	assert.True(t, markedUp.Discount().Equal(mustDec(t, "-2.00")))
}
