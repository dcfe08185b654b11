package service

import (
	"context"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/google/uuid"
)

// TableUpdate holds the fields an admin may change. Nil fields are kept.
type TableUpdate struct {
	TableNumber     *int
	Seats           *int
	IsAvailable     *bool
	Location        *domain.Location
	SpecialFeatures []domain.Feature
}

type TableService struct {
	tables       TableRepository
	reservations ReservationRepository
	availability *Availability
}

func NewTableService(tables TableRepository, reservations ReservationRepository) *TableService {
	return &TableService{
		tables:       tables,
		reservations: reservations,
		availability: NewAvailability(reservations, tables),
	}
}

func (s *TableService) Create(ctx context.Context, table *domain.Table) error {
	table.ID = uuid.NewString()
	if table.SpecialFeatures == nil {
		table.SpecialFeatures = []domain.Feature{}
	}
	table.CurrentReservation = nil
	return s.tables.CreateTable(ctx, table)
}

func (s *TableService) List(ctx context.Context) ([]domain.Table, error) {
	return s.tables.ListTables(ctx)
}

func (s *TableService) Get(ctx context.Context, id string) (*domain.Table, error) {
	return s.tables.GetTable(ctx, id)
}

// Update never touches the current reservation; that link belongs to the
// reservation lifecycle.
func (s *TableService) Update(ctx context.Context, id string, update TableUpdate) (*domain.Table, error) {
	table, err := s.tables.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.TableNumber != nil {
		table.TableNumber = *update.TableNumber
	}
	if update.Seats != nil {
		table.Seats = *update.Seats
	}
	if update.IsAvailable != nil {
		table.IsAvailable = *update.IsAvailable
	}
	if update.Location != nil {
		table.Location = *update.Location
	}
	if update.SpecialFeatures != nil {
		table.SpecialFeatures = update.SpecialFeatures
	}

	if err := s.tables.UpdateTable(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *TableService) Delete(ctx context.Context, id string) error {
	if _, err := s.tables.GetTable(ctx, id); err != nil {
		return err
	}

	live, err := s.reservations.CountLiveForTable(ctx, id)
	if err != nil {
		return err
	}
	if live > 0 {
		return domain.Conflict("Table has active reservations")
	}

	rows, err := s.tables.DeleteTable(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFound(domain.MsgTableNotFound)
	}
	return nil
}

func (s *TableService) FindAvailable(ctx context.Context, minSeats int, at time.Time) ([]domain.Table, error) {
	return s.availability.FindAvailableTables(ctx, minSeats, at)
}

var _ TableServiceInterface = (*TableService)(nil)
