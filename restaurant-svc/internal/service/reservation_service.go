package service

import (
	"context"
	"errors"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ReservationUpdate is the full field set of an edit. The target table is
// addressed by its number.
type ReservationUpdate struct {
	UserID         string
	Name           string
	Surname        string
	Email          string
	Time           time.Time
	GuestNumber    int
	TableNumber    int
	Status         domain.ReservationStatus
	SpecialMessage string
}

type ReservationService struct {
	reservations ReservationRepository
	tables       TableRepository
	availability *Availability
	locker       SlotLocker
	publisher    EventPublisher
}

func NewReservationService(reservations ReservationRepository, tables TableRepository, locker SlotLocker, publisher EventPublisher) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		tables:       tables,
		availability: NewAvailability(reservations, tables),
		locker:       locker,
		publisher:    publisher,
	}
}

func (s *ReservationService) Create(ctx context.Context, r *domain.Reservation) error {
	table, err := s.tables.GetTable(ctx, r.TableID)
	if err != nil {
		return err
	}
	if r.GuestNumber > table.Seats {
		return domain.CapacityExceeded(table.Seats, r.GuestNumber)
	}

	r.Time = domain.NormalizeTime(r.Time)
	unlock, err := s.lockSlot(ctx, table.ID, r.Time)
	if err != nil {
		return err
	}
	defer unlock()

	free, err := s.availability.IsAvailable(ctx, table.ID, r.Time)
	if err != nil {
		return err
	}
	if !free {
		return domain.Conflict(domain.MsgSlotTaken)
	}

	if r.Status == "" {
		r.Status = domain.ReservationPending
	}
	r.ID = uuid.NewString()
	r.TableNumber = table.TableNumber

	var sync domain.TableSync
	if r.Status.Live() {
		sync.Claim = table.ID
	}
	if err := s.reservations.CreateReservation(ctx, r, sync); err != nil {
		return err
	}

	s.publish(ctx, domain.Event{
		Type:          domain.EventReservationCreated,
		ReservationID: r.ID,
		TableID:       table.ID,
		Status:        string(r.Status),
	})
	return nil
}

func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.reservations.ListReservations(ctx)
}

func (s *ReservationService) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.reservations.GetReservation(ctx, id)
}

func (s *ReservationService) Update(ctx context.Context, id string, update ReservationUpdate) (*domain.Reservation, error) {
	existing, err := s.reservations.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	table, err := s.tables.GetTableByNumber(ctx, update.TableNumber)
	if err != nil {
		return nil, err
	}
	if update.GuestNumber > table.Seats {
		return nil, domain.CapacityExceeded(table.Seats, update.GuestNumber)
	}

	at := existing.Time
	if !update.Time.IsZero() {
		at = domain.NormalizeTime(update.Time)
	}
	unlock, err := s.lockSlot(ctx, table.ID, at)
	if err != nil {
		return nil, err
	}
	defer unlock()

	free, err := s.availability.isAvailableExcept(ctx, table.ID, at, existing.ID)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, domain.Conflict(domain.MsgSlotTaken)
	}

	status := update.Status
	if status == "" {
		status = existing.Status
	}

	sync := tableSyncForUpdate(existing, table, status)

	previousTableID := existing.TableID
	if update.UserID != "" {
		existing.UserID = update.UserID
	}
	existing.Name = update.Name
	existing.Surname = update.Surname
	existing.Email = update.Email
	existing.Time = at
	existing.GuestNumber = update.GuestNumber
	existing.TableID = table.ID
	existing.TableNumber = table.TableNumber
	existing.Status = status
	existing.SpecialMessage = update.SpecialMessage
	existing.User = nil
	existing.Table = nil

	if err := s.reservations.UpdateReservation(ctx, existing, sync); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.Event{
		Type:            domain.EventReservationUpdated,
		ReservationID:   existing.ID,
		TableID:         table.ID,
		PreviousTableID: previousTableID,
		Status:          string(status),
	})
	return existing, nil
}

// tableSyncForUpdate decides which tables an edit releases and claims.
// Moving to another table releases the old one. A live reservation claims its
// table unless it already held it; a cancelled one releases it.
func tableSyncForUpdate(existing *domain.Reservation, target *domain.Table, status domain.ReservationStatus) domain.TableSync {
	var sync domain.TableSync

	moved := existing.TableID != target.ID
	if existing.TableID == "" {
		moved = existing.TableNumber != target.TableNumber
	}

	if moved {
		sync.Release = existing.TableID
		if sync.Release == "" {
			sync.ReleaseNumber = existing.TableNumber
		}
		if status.Live() {
			sync.Claim = target.ID
		}
		return sync
	}

	switch {
	case !status.Live():
		sync.Release = target.ID
	case !existing.Status.Live():
		sync.Claim = target.ID
	}
	return sync
}

func (s *ReservationService) Delete(ctx context.Context, id string) error {
	existing, err := s.reservations.GetReservation(ctx, id)
	if err != nil {
		return err
	}

	sync := domain.TableSync{Release: existing.TableID}
	if sync.Release == "" {
		sync.ReleaseNumber = existing.TableNumber
	}
	if err := s.reservations.DeleteReservation(ctx, id, sync); err != nil {
		return err
	}

	s.publish(ctx, domain.Event{
		Type:          domain.EventReservationDeleted,
		ReservationID: id,
		TableID:       existing.TableID,
		Status:        string(existing.Status),
	})
	return nil
}

// lockSlot takes the slot lock for the duration of a check-then-write. A
// locker failure is logged and the write proceeds; the store's unique index
// still rejects a double booking.
func (s *ReservationService) lockSlot(ctx context.Context, tableID string, at time.Time) (func(), error) {
	noop := func() {}
	if s.locker == nil {
		return noop, nil
	}

	token, err := s.locker.Lock(ctx, tableID, at)
	if errors.Is(err, domain.ErrSlotLocked) {
		return noop, domain.Conflict(domain.MsgSlotTaken)
	}
	if err != nil {
		log.WithFields(log.Fields{
			"tableId": tableID,
			"time":    at,
		}).WithError(err).Warn("slot lock unavailable")
		return noop, nil
	}

	return func() {
		if err := s.locker.Unlock(context.WithoutCancel(ctx), tableID, at, token); err != nil {
			log.WithField("tableId", tableID).WithError(err).Warn("failed to release slot lock")
		}
	}, nil
}

func (s *ReservationService) publish(ctx context.Context, event domain.Event) {
	publishEvent(ctx, s.publisher, event)
}

func publishEvent(ctx context.Context, publisher EventPublisher, event domain.Event) {
	if publisher == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	if err := publisher.PublishEvent(ctx, event); err != nil {
		log.WithFields(log.Fields{
			"type": event.Type,
			"key":  event.Key(),
		}).WithError(err).Warn("failed to publish event")
	}
}

var _ ReservationServiceInterface = (*ReservationService)(nil)
