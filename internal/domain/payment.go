package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is a single purchase made by a user. It is a read-only value:
// nothing mutates a Payment after construction.
type Payment struct {
	ID          uuid.UUID
	User        User
	PaymentDate time.Time
	Items       []PaymentItem
}

// ItemCount returns the number of line items in the payment.
func (p Payment) ItemCount() int {
	return len(p.Items)
}

// Value returns the sum of the final prices of all line items.
// A payment with no items has a value of exactly zero.
func (p Payment) Value() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.FinalPrice)
	}
	return total
}

// PaymentItem is a single purchased product line.
type PaymentItem struct {
	Name         string
	RegularPrice decimal.Decimal
	FinalPrice   decimal.Decimal
}

// Discount returns regular minus final price. The result is not clamped:
// an item sold above its regular price yields a negative discount.
func (i PaymentItem) Discount() decimal.Decimal {
	return i.RegularPrice.Sub(i.FinalPrice)
}
