package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"homefront/internal/domain/expense"
)

type ExpenseRepository struct {
	db *DB
}

func NewExpenseRepository(db *DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = `id, user_id, category, to_name, amount, date, is_recurring, frequency, end_date, created_at, updated_at`

func scanExpense(row interface{ Scan(...any) error }) (*expense.Expense, error) {
	var exp expense.Expense
	var sc scheduleColumns
	err := row.Scan(
		&exp.ID, &exp.UserID, &exp.Category, &exp.To, &exp.Amount, &exp.Date,
		&sc.IsRecurring, &sc.Frequency, &sc.EndDate,
		&exp.CreatedAt, &exp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	exp.Schedule = sc.schedule()
	return &exp, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, exp *expense.Expense) (*expense.Expense, error) {
	sc := columnsOf(exp.Schedule)
	query := `
		INSERT INTO expenses (id, user_id, category, to_name, amount, date, is_recurring, frequency, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + expenseColumns

	created, err := scanExpense(r.db.QueryRowContext(ctx, query,
		uuid.NewString(), exp.UserID, exp.Category, exp.To, exp.Amount, exp.Date,
		sc.IsRecurring, sc.Frequency, sc.EndDate,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return created, nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*expense.Expense, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, expense.ErrExpenseNotFound
	}

	exp, err := scanExpense(r.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, expense.ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return exp, nil
}

func (r *ExpenseRepository) ListByUserID(ctx context.Context, userID int64) ([]*expense.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*expense.Expense{}
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, exp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, exp *expense.Expense) (*expense.Expense, error) {
	sc := columnsOf(exp.Schedule)
	query := `
		UPDATE expenses
		SET category = $2, to_name = $3, amount = $4, date = $5,
		    is_recurring = $6, frequency = $7, end_date = $8,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + expenseColumns

	updated, err := scanExpense(r.db.QueryRowContext(ctx, query,
		exp.ID, exp.Category, exp.To, exp.Amount, exp.Date,
		sc.IsRecurring, sc.Frequency, sc.EndDate,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, expense.ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return updated, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}
