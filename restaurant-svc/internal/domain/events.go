package domain

import "time"

const (
	EventReservationCreated    = "reservation.created"
	EventReservationUpdated    = "reservation.updated"
	EventReservationDeleted    = "reservation.deleted"
	EventTakeawayCreated       = "takeaway.created"
	EventTakeawayStatusChanged = "takeaway.status_changed"
	EventTakeawayCancelled     = "takeaway.cancelled"
)

type Event struct {
	Type            string    `json:"type"`
	ReservationID   string    `json:"reservationId,omitempty"`
	TableID         string    `json:"tableId,omitempty"`
	PreviousTableID string    `json:"previousTableId,omitempty"`
	TakeawayID      string    `json:"takeawayId,omitempty"`
	Status          string    `json:"status,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Key is the partition key for the event.
func (e Event) Key() string {
	if e.ReservationID != "" {
		return e.ReservationID
	}
	return e.TakeawayID
}

// TableIDs lists the tables whose availability the event may have changed.
func (e Event) TableIDs() []string {
	var ids []string
	if e.TableID != "" {
		ids = append(ids, e.TableID)
	}
	if e.PreviousTableID != "" && e.PreviousTableID != e.TableID {
		ids = append(ids, e.PreviousTableID)
	}
	return ids
}
