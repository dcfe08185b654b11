package storage

import (
	"context"
	"database/sql"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// withTx runs fn in a transaction, committing only when fn succeeds.
func (r *PostgresRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit transaction")
}

var uniqueViolations = map[string]func() error{
	"tables_table_number_key": func() error { return domain.Validation("Table number must be unique") },
	"reservations_live_slot":  func() error { return domain.Conflict(domain.MsgSlotTaken) },
	"categories_name_key":     func() error { return domain.Validation("Category name must be unique") },
	"users_email_key":         func() error { return domain.Validation("Email already exists") },
	"users_username_key":      func() error { return domain.Validation("Username already exists") },
}

// translate turns driver errors into domain errors. Anything it does not
// recognise is wrapped with op.
func translate(err error, op, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound(notFoundMsg)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			if build, ok := uniqueViolations[pqErr.Constraint]; ok {
				return build()
			}
			return domain.Validation(pqErr.Message)
		case "23503":
			if pqErr.Constraint == "menu_items_category_id_fkey" {
				return domain.NotFound(domain.MsgCategoryNotFound)
			}
		case "23514", "22P02":
			return domain.Validation(pqErr.Message)
		}
	}
	return errors.Wrap(err, op)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
