package service

import "restaurant-backend/restaurant-svc/internal/domain"

// TransitionPolicy decides whether a takeaway may move between two statuses.
type TransitionPolicy interface {
	Allow(from, to domain.TakeawayStatus) bool
}

// AnyTransition allows every move between known statuses.
type AnyTransition struct{}

func (AnyTransition) Allow(from, to domain.TakeawayStatus) bool {
	return true
}

// TransitionTable allows only the listed moves. Setting the current status
// again is always allowed.
type TransitionTable map[domain.TakeawayStatus][]domain.TakeawayStatus

func (t TransitionTable) Allow(from, to domain.TakeawayStatus) bool {
	if from == to {
		return true
	}
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StrictTransitions follows the order lifecycle forward, with cancellation
// open until the order is completed.
var StrictTransitions = TransitionTable{
	domain.TakeawayPending:        {domain.TakeawayConfirmed, domain.TakeawayCancelled},
	domain.TakeawayConfirmed:      {domain.TakeawayPreparing, domain.TakeawayCancelled},
	domain.TakeawayPreparing:      {domain.TakeawayOutForDelivery, domain.TakeawayCompleted, domain.TakeawayCancelled},
	domain.TakeawayOutForDelivery: {domain.TakeawayCompleted, domain.TakeawayCancelled},
}
