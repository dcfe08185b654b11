package service

import (
	"context"
	"encoding/json"
	"strings"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

type EventReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

var _ EventReader = (*kafka.Reader)(nil)

// Reconciler consumes reservation events and releases any table left pointing
// at a reservation that is gone or cancelled.
type Reconciler struct {
	Reader EventReader
	Store  TableReconcileStore
}

func NewReconciler(reader EventReader, store TableReconcileStore) *Reconciler {
	return &Reconciler{
		Reader: reader,
		Store:  store,
	}
}

// Start blocks until ctx is done.
func (c *Reconciler) Start(ctx context.Context) error {
	log.Info("starting table reconciler")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.WithError(err).Error("error reading message")
			continue
		}

		var event domain.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.WithError(err).Warn("error unmarshaling event")
			continue
		}

		c.Process(ctx, event)
	}
}

// Process handles one event. Events other than reservation events are ignored.
func (c *Reconciler) Process(ctx context.Context, event domain.Event) {
	if !strings.HasPrefix(event.Type, "reservation.") {
		return
	}

	for _, tableID := range event.TableIDs() {
		released, err := c.Store.ReleaseStaleTable(ctx, tableID)
		if err != nil {
			log.WithFields(log.Fields{
				"tableId":       tableID,
				"reservationId": event.ReservationID,
			}).WithError(err).Error("failed to reconcile table")
			continue
		}
		if released {
			log.WithFields(log.Fields{
				"tableId":       tableID,
				"reservationId": event.ReservationID,
			}).Info("released stale table")
		}
	}
}
