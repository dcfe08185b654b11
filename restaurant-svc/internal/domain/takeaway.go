package domain

import "time"

type TakeawayStatus string

const (
	TakeawayPending        TakeawayStatus = "Pending"
	TakeawayConfirmed      TakeawayStatus = "Confirmed"
	TakeawayPreparing      TakeawayStatus = "Preparing"
	TakeawayOutForDelivery TakeawayStatus = "Out for Delivery"
	TakeawayCompleted      TakeawayStatus = "Completed"
	TakeawayCancelled      TakeawayStatus = "Cancelled"
)

var TakeawayStatuses = []TakeawayStatus{
	TakeawayPending,
	TakeawayConfirmed,
	TakeawayPreparing,
	TakeawayOutForDelivery,
	TakeawayCompleted,
	TakeawayCancelled,
}

func (s TakeawayStatus) Valid() bool {
	for _, status := range TakeawayStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Cancellable reports whether an order in this status may still be cancelled.
func (s TakeawayStatus) Cancellable() bool {
	return s != TakeawayCompleted && s != TakeawayCancelled
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentCard   PaymentMethod = "Card"
	PaymentOnline PaymentMethod = "Online"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "Unpaid"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

const DefaultCountry = "United States"

type TakeawayItem struct {
	MenuItemID          string  `json:"menuItem"`
	Quantity            int     `json:"quantity"`
	Price               float64 `json:"price"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type ContactInfo struct {
	Phone string `json:"phone"`
}

type Takeaway struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	Items           []TakeawayItem `json:"items"`
	TotalPrice      float64        `json:"totalPrice"`
	DeliveryAddress Address        `json:"deliveryAddress"`
	ContactInfo     ContactInfo    `json:"contactInfo"`
	Status          TakeawayStatus `json:"status"`
	PaymentMethod   PaymentMethod  `json:"paymentMethod"`
	PaymentStatus   PaymentStatus  `json:"paymentStatus"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`

	User           *UserSummary `json:"user,omitempty"`
	PopulatedItems []MenuItem   `json:"populatedItems,omitempty"`
}

// RecalculateTotal derives TotalPrice from the current items. Every save path
// calls it, so the stored total never diverges from the items.
func (t *Takeaway) RecalculateTotal() {
	var total float64
	for _, item := range t.Items {
		total += item.Price * float64(item.Quantity)
	}
	t.TotalPrice = total
}

func (t *Takeaway) Cancel() error {
	if !t.Status.Cancellable() {
		return InvalidTransition("Takeaway cannot be cancelled")
	}
	t.Status = TakeawayCancelled
	return nil
}

// MenuItemIDs returns the distinct menu item ids referenced by the order, in
// first-seen order.
func (t *Takeaway) MenuItemIDs() []string {
	seen := make(map[string]bool, len(t.Items))
	ids := make([]string, 0, len(t.Items))
	for _, item := range t.Items {
		if seen[item.MenuItemID] {
			continue
		}
		seen[item.MenuItemID] = true
		ids = append(ids, item.MenuItemID)
	}
	return ids
}
