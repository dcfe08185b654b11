package storage

import (
	"context"
	"database/sql"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const tableColumns = `id, table_number, seats, is_available, location, special_features, current_reservation, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTable(row rowScanner) (*domain.Table, error) {
	var (
		t        domain.Table
		features pq.StringArray
		current  sql.NullString
	)
	if err := row.Scan(&t.ID, &t.TableNumber, &t.Seats, &t.IsAvailable, &t.Location, &features, &current, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.SpecialFeatures = make([]domain.Feature, 0, len(features))
	for _, f := range features {
		t.SpecialFeatures = append(t.SpecialFeatures, domain.Feature(f))
	}
	if current.Valid {
		t.CurrentReservation = &current.String
	}
	return &t, nil
}

func featureArray(features []domain.Feature) pq.StringArray {
	arr := make(pq.StringArray, 0, len(features))
	for _, f := range features {
		arr = append(arr, string(f))
	}
	return arr
}

func currentReservation(t *domain.Table) sql.NullString {
	if t.CurrentReservation == nil {
		return sql.NullString{}
	}
	return nullString(*t.CurrentReservation)
}

func (r *PostgresRepository) CreateTable(ctx context.Context, t *domain.Table) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO tables (id, table_number, seats, is_available, location, special_features, current_reservation)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		t.ID, t.TableNumber, t.Seats, t.IsAvailable, t.Location, featureArray(t.SpecialFeatures), currentReservation(t),
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	return translate(err, "insert table", domain.MsgTableNotFound)
}

func (r *PostgresRepository) ListTables(ctx context.Context) ([]domain.Table, error) {
	return r.queryTables(ctx, `SELECT `+tableColumns+` FROM tables ORDER BY table_number`)
}

func (r *PostgresRepository) ListAvailableTables(ctx context.Context, minSeats int) ([]domain.Table, error) {
	return r.queryTables(ctx, `
		SELECT `+tableColumns+`
		FROM tables
		WHERE seats >= $1 AND is_available = TRUE
		ORDER BY table_number`, minSeats)
}

func (r *PostgresRepository) queryTables(ctx context.Context, query string, args ...any) ([]domain.Table, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query tables")
	}
	defer rows.Close()

	tables := []domain.Table{}
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan table")
		}
		tables = append(tables, *t)
	}
	return tables, errors.Wrap(rows.Err(), "iterate tables")
}

func (r *PostgresRepository) GetTable(ctx context.Context, id string) (*domain.Table, error) {
	t, err := scanTable(r.DB.QueryRowContext(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, "get table", domain.MsgTableNotFound)
	}
	return t, nil
}

func (r *PostgresRepository) GetTableByNumber(ctx context.Context, number int) (*domain.Table, error) {
	t, err := scanTable(r.DB.QueryRowContext(ctx, `SELECT `+tableColumns+` FROM tables WHERE table_number = $1`, number))
	if err != nil {
		return nil, translate(err, "get table by number", domain.MsgTableNotFound)
	}
	return t, nil
}

// UpdateTable writes the admin-editable columns. current_reservation is left alone.
func (r *PostgresRepository) UpdateTable(ctx context.Context, t *domain.Table) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE tables
		SET table_number = $1, seats = $2, is_available = $3, location = $4, special_features = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`,
		t.TableNumber, t.Seats, t.IsAvailable, t.Location, featureArray(t.SpecialFeatures), t.ID,
	).Scan(&t.UpdatedAt)
	return translate(err, "update table", domain.MsgTableNotFound)
}

func (r *PostgresRepository) DeleteTable(ctx context.Context, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM tables WHERE id = $1", id)
	if err != nil {
		return 0, errors.Wrap(err, "delete table")
	}
	return result.RowsAffected()
}

// ReleaseStaleTable frees the table when its current reservation no longer
// exists or is no longer live.
func (r *PostgresRepository) ReleaseStaleTable(ctx context.Context, tableID string) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE tables t
		SET is_available = TRUE, current_reservation = NULL, updated_at = NOW()
		WHERE t.id = $1
		  AND (t.current_reservation IS NOT NULL OR t.is_available = FALSE)
		  AND NOT EXISTS (
			SELECT 1 FROM reservations r
			WHERE r.id = t.current_reservation AND r.status IN ('pending', 'confirmed')
		  )`, tableID)
	if err != nil {
		return false, errors.Wrap(err, "release stale table")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "release stale table")
	}
	return n > 0, nil
}
