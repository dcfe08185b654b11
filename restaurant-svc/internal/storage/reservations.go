package storage

import (
	"context"
	"database/sql"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const reservationColumns = `r.id, r.user_id, COALESCE(r.table_id, ''), r.table_number, r.name, r.surname, r.email,
	r.time, r.guest_number, r.status, r.special_message, r.created_at, r.updated_at`

func scanReservation(row rowScanner, extra ...any) (*domain.Reservation, error) {
	var res domain.Reservation
	dest := []any{
		&res.ID, &res.UserID, &res.TableID, &res.TableNumber, &res.Name, &res.Surname, &res.Email,
		&res.Time, &res.GuestNumber, &res.Status, &res.SpecialMessage, &res.CreatedAt, &res.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	res.Time = res.Time.UTC()
	return &res, nil
}

type userSummaryColumns struct {
	id, name, email sql.NullString
}

func (c *userSummaryColumns) dest() []any {
	return []any{&c.id, &c.name, &c.email}
}

func (c *userSummaryColumns) summary() *domain.UserSummary {
	if !c.id.Valid {
		return nil
	}
	return &domain.UserSummary{ID: c.id.String, Name: c.name.String, Email: c.email.String}
}

func (r *PostgresRepository) CountLiveAt(ctx context.Context, tableID string, at time.Time, excludeID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE table_id = $1 AND time = $2 AND status IN ('pending', 'confirmed') AND id <> $3`,
		tableID, at, excludeID,
	).Scan(&n)
	return n, errors.Wrap(err, "count live reservations")
}

func (r *PostgresRepository) CountLiveForTable(ctx context.Context, tableID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE table_id = $1 AND status IN ('pending', 'confirmed')`, tableID,
	).Scan(&n)
	return n, errors.Wrap(err, "count table reservations")
}

func (r *PostgresRepository) CreateReservation(ctx context.Context, res *domain.Reservation, sync domain.TableSync) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO reservations (id, user_id, table_id, table_number, name, surname, email, time, guest_number, status, special_message)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING created_at, updated_at`,
			res.ID, res.UserID, nullString(res.TableID), res.TableNumber, res.Name, res.Surname, res.Email,
			res.Time, res.GuestNumber, res.Status, res.SpecialMessage,
		).Scan(&res.CreatedAt, &res.UpdatedAt)
		if err != nil {
			return translate(err, "insert reservation", domain.MsgReservationNotFound)
		}
		return applyTableSync(ctx, tx, res.ID, sync)
	})
}

func (r *PostgresRepository) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	var (
		user                    userSummaryColumns
		tableID, tableLocation  sql.NullString
		tableNumber, tableSeats sql.NullInt64
		tableAvailable          sql.NullBool
	)
	res, err := scanReservation(r.DB.QueryRowContext(ctx, `
		SELECT `+reservationColumns+`,
			u.id, u.name, u.email,
			t.id, t.table_number, t.seats, t.location, t.is_available
		FROM reservations r
		LEFT JOIN users u ON u.id = r.user_id
		LEFT JOIN tables t ON t.id = r.table_id
		WHERE r.id = $1`, id),
		append(user.dest(), &tableID, &tableNumber, &tableSeats, &tableLocation, &tableAvailable)...,
	)
	if err != nil {
		return nil, translate(err, "get reservation", domain.MsgReservationNotFound)
	}

	res.User = user.summary()
	if tableID.Valid {
		res.Table = &domain.TableSummary{
			ID:          tableID.String,
			TableNumber: int(tableNumber.Int64),
			Seats:       int(tableSeats.Int64),
			Location:    domain.Location(tableLocation.String),
			IsAvailable: tableAvailable.Bool,
		}
	}
	return res, nil
}

func (r *PostgresRepository) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+reservationColumns+`, u.id, u.name, u.email
		FROM reservations r
		LEFT JOIN users u ON u.id = r.user_id
		ORDER BY r.time`)
	if err != nil {
		return nil, errors.Wrap(err, "query reservations")
	}
	defer rows.Close()

	reservations := []domain.Reservation{}
	for rows.Next() {
		var user userSummaryColumns
		res, err := scanReservation(rows, user.dest()...)
		if err != nil {
			return nil, errors.Wrap(err, "scan reservation")
		}
		res.User = user.summary()
		reservations = append(reservations, *res)
	}
	return reservations, errors.Wrap(rows.Err(), "iterate reservations")
}

func (r *PostgresRepository) UpdateReservation(ctx context.Context, res *domain.Reservation, sync domain.TableSync) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			UPDATE reservations
			SET user_id = $1, table_id = $2, table_number = $3, name = $4, surname = $5, email = $6,
				time = $7, guest_number = $8, status = $9, special_message = $10, updated_at = NOW()
			WHERE id = $11
			RETURNING updated_at`,
			res.UserID, nullString(res.TableID), res.TableNumber, res.Name, res.Surname, res.Email,
			res.Time, res.GuestNumber, res.Status, res.SpecialMessage, res.ID,
		).Scan(&res.UpdatedAt)
		if err != nil {
			return translate(err, "update reservation", domain.MsgReservationNotFound)
		}
		return applyTableSync(ctx, tx, res.ID, sync)
	})
}

func (r *PostgresRepository) DeleteReservation(ctx context.Context, id string, sync domain.TableSync) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM reservations WHERE id = $1", id)
		if err != nil {
			return errors.Wrap(err, "delete reservation")
		}
		n, err := result.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "delete reservation")
		}
		if n == 0 {
			return domain.NotFound(domain.MsgReservationNotFound)
		}
		return applyTableSync(ctx, tx, id, sync)
	})
}

// applyTableSync releases and then claims tables inside tx. Only a table still
// pointing at reservationID is released; anything else is logged. A missing
// table on claim aborts the transaction.
func applyTableSync(ctx context.Context, tx *sql.Tx, reservationID string, sync domain.TableSync) error {
	var (
		result sql.Result
		err    error
	)
	switch {
	case sync.Release != "":
		result, err = tx.ExecContext(ctx, `
			UPDATE tables SET is_available = TRUE, current_reservation = NULL, updated_at = NOW()
			WHERE id = $1 AND current_reservation = $2`, sync.Release, reservationID)
	case sync.ReleaseNumber > 0:
		result, err = tx.ExecContext(ctx, `
			UPDATE tables SET is_available = TRUE, current_reservation = NULL, updated_at = NOW()
			WHERE table_number = $1 AND current_reservation = $2`, sync.ReleaseNumber, reservationID)
	}
	if err != nil {
		return errors.Wrap(err, "release table")
	}
	if result != nil {
		if n, _ := result.RowsAffected(); n == 0 {
			log.WithFields(log.Fields{
				"reservationId": reservationID,
				"tableId":       sync.Release,
				"tableNumber":   sync.ReleaseNumber,
			}).Warn("table to release not found or held by another reservation")
		}
	}

	if sync.Claim == "" {
		return nil
	}
	result, err = tx.ExecContext(ctx, `
		UPDATE tables SET is_available = FALSE, current_reservation = $1, updated_at = NOW()
		WHERE id = $2`, reservationID, sync.Claim)
	if err != nil {
		return errors.Wrap(err, "claim table")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "claim table")
	}
	if n == 0 {
		return domain.NotFound(domain.MsgTableNotFound)
	}
	return nil
}
