package service

import (
	"context"
	"fmt"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/google/uuid"
)

type TakeawayService struct {
	takeaways TakeawayRepository
	menu      MenuRepository
	policy    TransitionPolicy
	qrEncoder QRGenerator
	publisher EventPublisher
}

func NewTakeawayService(takeaways TakeawayRepository, menu MenuRepository, policy TransitionPolicy, qr QRGenerator, publisher EventPublisher) *TakeawayService {
	if policy == nil {
		policy = AnyTransition{}
	}
	return &TakeawayService{
		takeaways: takeaways,
		menu:      menu,
		policy:    policy,
		qrEncoder: qr,
		publisher: publisher,
	}
}

// Create stores a new order. Line prices are the caller's snapshot and are
// not looked up from the menu.
func (s *TakeawayService) Create(ctx context.Context, t *domain.Takeaway) error {
	if len(t.Items) == 0 {
		return domain.Validation("items must contain at least one item")
	}

	ids := t.MenuItemIDs()
	found, err := s.menu.GetMenuItems(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return domain.NotFound(domain.MsgMenuItemNotFound)
	}

	t.ID = uuid.NewString()
	if t.Status == "" {
		t.Status = domain.TakeawayPending
	}
	if t.PaymentStatus == "" {
		t.PaymentStatus = domain.PaymentUnpaid
	}
	if t.DeliveryAddress.Country == "" {
		t.DeliveryAddress.Country = domain.DefaultCountry
	}

	if err := s.takeaways.CreateTakeaway(ctx, t); err != nil {
		return err
	}

	s.publish(ctx, domain.EventTakeawayCreated, t)
	return nil
}

func (s *TakeawayService) List(ctx context.Context) ([]domain.Takeaway, error) {
	return s.takeaways.ListTakeaways(ctx)
}

func (s *TakeawayService) Get(ctx context.Context, id string) (*domain.Takeaway, error) {
	return s.takeaways.GetTakeaway(ctx, id)
}

func (s *TakeawayService) UpdateStatus(ctx context.Context, id string, status domain.TakeawayStatus) (*domain.Takeaway, error) {
	t, err := s.takeaways.GetTakeaway(ctx, id)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.Validation(fmt.Sprintf("status %q is not a valid takeaway status", status))
	}
	if !s.policy.Allow(t.Status, status) {
		return nil, domain.InvalidTransition(fmt.Sprintf("Takeaway cannot move from %s to %s", t.Status, status))
	}

	t.Status = status
	if err := s.takeaways.UpdateTakeaway(ctx, t); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventTakeawayStatusChanged, t)
	return t, nil
}

func (s *TakeawayService) Cancel(ctx context.Context, id string) (*domain.Takeaway, error) {
	t, err := s.takeaways.GetTakeaway(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.Cancel(); err != nil {
		return nil, err
	}
	if err := s.takeaways.UpdateTakeaway(ctx, t); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventTakeawayCancelled, t)
	return t, nil
}

// QRCode renders the tracking link of an existing order.
func (s *TakeawayService) QRCode(ctx context.Context, id string) ([]byte, error) {
	if s.qrEncoder == nil {
		return nil, fmt.Errorf("qr generator is not configured")
	}
	t, err := s.takeaways.GetTakeaway(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.qrEncoder.Generate(t.ID)
}

func (s *TakeawayService) publish(ctx context.Context, eventType string, t *domain.Takeaway) {
	publishEvent(ctx, s.publisher, domain.Event{
		Type:       eventType,
		TakeawayID: t.ID,
		Status:     string(t.Status),
	})
}

var _ TakeawayServiceInterface = (*TakeawayService)(nil)
