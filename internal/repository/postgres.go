package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/northarc/paylens/internal/domain"
)

// Postgres is a Source reading the full payment collection from the
// payments schema. It performs no writes.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// FetchAll loads every payment with its user and line items. Both reads
// run in one repeatable-read transaction, so a concurrent writer cannot
// tear the snapshot between them. Row order is whatever the database
// returns; callers must not rely on it.
func (p *Postgres) FetchAll(ctx context.Context) ([]domain.Payment, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback(ctx)

	payments, index, err := fetchPayments(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := fetchItems(ctx, tx, payments, index); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return payments, nil
}

func fetchPayments(ctx context.Context, tx pgx.Tx) ([]domain.Payment, map[uuid.UUID]int, error) {
	rows, err := tx.Query(ctx, `
		SELECT p.id, p.paid_at, u.id, u.email, u.name
		FROM payments p
		JOIN users u ON u.id = p.user_id`)
	if err != nil {
		return nil, nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			paymentID pgtype.UUID
			paidAt    pgtype.Timestamptz
			userID    pgtype.UUID
			email     string
			name      string
		)
		if err := rows.Scan(&paymentID, &paidAt, &userID, &email, &name); err != nil {
			return nil, nil, fmt.Errorf("scan payment: %w", err)
		}

		id := pgUUIDToUUID(paymentID)
		index[id] = len(payments)
		payments = append(payments, domain.Payment{
			ID:          id,
			PaymentDate: paidAt.Time,
			User: domain.User{
				ID:    pgUUIDToUUID(userID),
				Email: email,
				Name:  name,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("read payments: %w", err)
	}

	return payments, index, nil
}

func fetchItems(ctx context.Context, tx pgx.Tx, payments []domain.Payment, index map[uuid.UUID]int) error {
	rows, err := tx.Query(ctx, `
		SELECT payment_id, name, regular_price, final_price
		FROM payment_items
		ORDER BY id`)
	if err != nil {
		return fmt.Errorf("query payment items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			paymentID    pgtype.UUID
			name         string
			regularPrice pgtype.Numeric
			finalPrice   pgtype.Numeric
		)
		if err := rows.Scan(&paymentID, &name, &regularPrice, &finalPrice); err != nil {
			return fmt.Errorf("scan payment item: %w", err)
		}

		i, ok := index[pgUUIDToUUID(paymentID)]
		if !ok {
			continue
		}
		payments[i].Items = append(payments[i].Items, domain.PaymentItem{
			Name:         name,
			RegularPrice: pgNumericToDecimal(regularPrice),
			FinalPrice:   pgNumericToDecimal(finalPrice),
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read payment items: %w", err)
	}

	return nil
}
