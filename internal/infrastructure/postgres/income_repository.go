package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"homefront/internal/domain/income"
)

type IncomeRepository struct {
	db *DB
}

func NewIncomeRepository(db *DB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

const incomeColumns = `id, user_id, source, from_name, amount, date, is_recurring, frequency, end_date, created_at, updated_at`

func scanIncome(row interface{ Scan(...any) error }) (*income.Income, error) {
	var in income.Income
	var sc scheduleColumns
	err := row.Scan(
		&in.ID, &in.UserID, &in.Source, &in.From, &in.Amount, &in.Date,
		&sc.IsRecurring, &sc.Frequency, &sc.EndDate,
		&in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	in.Schedule = sc.schedule()
	return &in, nil
}

func (r *IncomeRepository) Create(ctx context.Context, in *income.Income) (*income.Income, error) {
	sc := columnsOf(in.Schedule)
	query := `
		INSERT INTO incomes (id, user_id, source, from_name, amount, date, is_recurring, frequency, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + incomeColumns

	created, err := scanIncome(r.db.QueryRowContext(ctx, query,
		uuid.NewString(), in.UserID, in.Source, in.From, in.Amount, in.Date,
		sc.IsRecurring, sc.Frequency, sc.EndDate,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}
	return created, nil
}

func (r *IncomeRepository) GetByID(ctx context.Context, id string) (*income.Income, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, income.ErrIncomeNotFound
	}

	in, err := scanIncome(r.db.QueryRowContext(ctx,
		`SELECT `+incomeColumns+` FROM incomes WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, income.ErrIncomeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get income: %w", err)
	}
	return in, nil
}

func (r *IncomeRepository) ListByUserID(ctx context.Context, userID int64) ([]*income.Income, error) {
	query := `
		SELECT ` + incomeColumns + `
		FROM incomes
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	incomes := []*income.Income{}
	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating incomes: %w", err)
	}
	return incomes, nil
}

func (r *IncomeRepository) Update(ctx context.Context, in *income.Income) (*income.Income, error) {
	sc := columnsOf(in.Schedule)
	query := `
		UPDATE incomes
		SET source = $2, from_name = $3, amount = $4, date = $5,
		    is_recurring = $6, frequency = $7, end_date = $8,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + incomeColumns

	updated, err := scanIncome(r.db.QueryRowContext(ctx, query,
		in.ID, in.Source, in.From, in.Amount, in.Date,
		sc.IsRecurring, sc.Frequency, sc.EndDate,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, income.ErrIncomeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update income: %w", err)
	}
	return updated, nil
}

func (r *IncomeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return income.ErrIncomeNotFound
	}
	return nil
}
