package service

import (
	"context"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"
)

// Availability answers whether a table slot is free. Slots are exact
// timestamps; there is no notion of a reservation's duration.
type Availability struct {
	reservations ReservationRepository
	tables       TableRepository
}

func NewAvailability(reservations ReservationRepository, tables TableRepository) *Availability {
	return &Availability{reservations: reservations, tables: tables}
}

// IsAvailable reports whether no live reservation holds the table at t.
func (a *Availability) IsAvailable(ctx context.Context, tableID string, t time.Time) (bool, error) {
	return a.isAvailableExcept(ctx, tableID, t, "")
}

func (a *Availability) isAvailableExcept(ctx context.Context, tableID string, t time.Time, excludeID string) (bool, error) {
	n, err := a.reservations.CountLiveAt(ctx, tableID, domain.NormalizeTime(t), excludeID)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// FindAvailableTables lists tables with enough seats that are free at t. The
// stored availability flag only narrows the candidates; each one is checked
// against the reservations.
func (a *Availability) FindAvailableTables(ctx context.Context, minSeats int, t time.Time) ([]domain.Table, error) {
	candidates, err := a.tables.ListAvailableTables(ctx, minSeats)
	if err != nil {
		return nil, err
	}

	tables := make([]domain.Table, 0, len(candidates))
	for _, table := range candidates {
		free, err := a.IsAvailable(ctx, table.ID, t)
		if err != nil {
			return nil, err
		}
		if free {
			tables = append(tables, table)
		}
	}
	return tables, nil
}
