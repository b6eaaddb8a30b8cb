// Package importer parses payment exports so the service can run over a
// fixed in-memory collection without a database.
package importer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/northarc/paylens/internal/domain"
	"github.com/shopspring/decimal"
)

// ParseHTML reads a payments HTML export. Each payment is a
// div.payment carrying data-email and data-date (RFC 3339) attributes,
// with one li.item per line item carrying data-regular and data-final
// price attributes and the product name as text.
func ParseHTML(r io.Reader) ([]domain.Payment, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}

	users := make(map[string]domain.User)
	var payments []domain.Payment
	var parseErr error

	doc.Find(".payment").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		payment, err := parsePayment(i, sel, users)
		if err != nil {
			parseErr = err
			return false
		}
		payments = append(payments, payment)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return payments, nil
}

// ParseHTMLFile parses the export at the given path.
func ParseHTMLFile(path string) ([]domain.Payment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()
	return ParseHTML(f)
}

func parsePayment(i int, sel *goquery.Selection, users map[string]domain.User) (domain.Payment, error) {
	email, ok := sel.Attr("data-email")
	if !ok || email == "" {
		return domain.Payment{}, fmt.Errorf("%w: payment %d has no data-email", domain.ErrInvalidExport, i)
	}

	rawDate, ok := sel.Attr("data-date")
	if !ok {
		return domain.Payment{}, fmt.Errorf("%w: payment %d has no data-date", domain.ErrInvalidExport, i)
	}
	paidAt, err := time.Parse(time.RFC3339, rawDate)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("%w: payment %d date %q: %v", domain.ErrInvalidExport, i, rawDate, err)
	}

	// One User value per email so payments of the same buyer share it.
	user, ok := users[email]
	if !ok {
		user = domain.User{
			ID:    uuid.New(),
			Email: email,
			Name:  sel.AttrOr("data-name", ""),
		}
		users[email] = user
	}

	var items []domain.PaymentItem
	var itemErr error
	sel.Find(".item").EachWithBreak(func(j int, itemSel *goquery.Selection) bool {
		item, err := parseItem(i, j, itemSel)
		if err != nil {
			itemErr = err
			return false
		}
		items = append(items, item)
		return true
	})
	if itemErr != nil {
		return domain.Payment{}, itemErr
	}

	return domain.Payment{
		ID:          uuid.New(),
		User:        user,
		PaymentDate: paidAt,
		Items:       items,
	}, nil
}

func parseItem(i, j int, sel *goquery.Selection) (domain.PaymentItem, error) {
	name := strings.TrimSpace(sel.Text())
	if name == "" {
		return domain.PaymentItem{}, fmt.Errorf("%w: payment %d item %d has no name", domain.ErrInvalidExport, i, j)
	}

	regular, err := parsePrice(sel, "data-regular")
	if err != nil {
		return domain.PaymentItem{}, fmt.Errorf("%w: payment %d item %d: %v", domain.ErrInvalidExport, i, j, err)
	}
	final, err := parsePrice(sel, "data-final")
	if err != nil {
		return domain.PaymentItem{}, fmt.Errorf("%w: payment %d item %d: %v", domain.ErrInvalidExport, i, j, err)
	}

	return domain.PaymentItem{
		Name:         name,
		RegularPrice: regular,
		FinalPrice:   final,
	}, nil
}

func parsePrice(sel *goquery.Selection, attr string) (decimal.Decimal, error) {
	raw, ok := sel.Attr(attr)
	if !ok {
		return decimal.Zero, fmt.Errorf("missing %s", attr)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad %s %q", attr, raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative %s %q", attr, raw)
	}
	return d, nil
}
