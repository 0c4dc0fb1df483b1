package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"homefront/internal/domain/debt"
)

type DebtRepository struct {
	db *DB
}

func NewDebtRepository(db *DB) *DebtRepository {
	return &DebtRepository{db: db}
}

const debtColumns = `id, user_id, creditor, holder, type, balance, apr, min_payment, payment_date,
	is_recurring, frequency, end_date, notes, created_at, updated_at`

func scanDebt(row interface{ Scan(...any) error }) (*debt.Debt, error) {
	var d debt.Debt
	var apr, minPayment decimal.NullDecimal
	var paymentDate sql.NullInt32
	var notes sql.NullString
	var sc scheduleColumns

	err := row.Scan(
		&d.ID, &d.UserID, &d.Creditor, &d.Holder, &d.Type, &d.Balance,
		&apr, &minPayment, &paymentDate,
		&sc.IsRecurring, &sc.Frequency, &sc.EndDate, &notes,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if apr.Valid {
		d.APR = &apr.Decimal
	}
	if minPayment.Valid {
		d.MinPayment = &minPayment.Decimal
	}
	if paymentDate.Valid {
		day := int(paymentDate.Int32)
		d.PaymentDate = &day
	}
	if notes.Valid {
		d.Notes = &notes.String
	}
	d.Schedule = sc.schedule()
	return &d, nil
}

func (r *DebtRepository) Create(ctx context.Context, d *debt.Debt) (*debt.Debt, error) {
	sc := columnsOf(d.Schedule)
	query := `
		INSERT INTO debts (id, user_id, creditor, holder, type, balance, apr, min_payment, payment_date,
		                   is_recurring, frequency, end_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + debtColumns

	created, err := scanDebt(r.db.QueryRowContext(ctx, query,
		uuid.NewString(), d.UserID, d.Creditor, d.Holder, d.Type, d.Balance,
		d.APR, d.MinPayment, d.PaymentDate,
		sc.IsRecurring, sc.Frequency, sc.EndDate, d.Notes,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}
	return created, nil
}

func (r *DebtRepository) GetByID(ctx context.Context, id string) (*debt.Debt, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, debt.ErrDebtNotFound
	}

	d, err := scanDebt(r.db.QueryRowContext(ctx,
		`SELECT `+debtColumns+` FROM debts WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, debt.ErrDebtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	return d, nil
}

// ListByUserID returns debts in snowball order: smallest balance first, oldest first on ties.
func (r *DebtRepository) ListByUserID(ctx context.Context, userID int64) ([]*debt.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE user_id = $1
		ORDER BY balance ASC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	debts := []*debt.Debt{}
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debts: %w", err)
	}
	return debts, nil
}

func (r *DebtRepository) Update(ctx context.Context, d *debt.Debt) (*debt.Debt, error) {
	sc := columnsOf(d.Schedule)
	query := `
		UPDATE debts
		SET creditor = $2, holder = $3, type = $4, balance = $5,
		    apr = $6, min_payment = $7, payment_date = $8,
		    is_recurring = $9, frequency = $10, end_date = $11, notes = $12,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + debtColumns

	updated, err := scanDebt(r.db.QueryRowContext(ctx, query,
		d.ID, d.Creditor, d.Holder, d.Type, d.Balance,
		d.APR, d.MinPayment, d.PaymentDate,
		sc.IsRecurring, sc.Frequency, sc.EndDate, d.Notes,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, debt.ErrDebtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}
	return updated, nil
}

func (r *DebtRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM debts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return debt.ErrDebtNotFound
	}
	return nil
}
