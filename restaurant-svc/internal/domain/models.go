package domain

import (
	"time"
)

type Location string

const (
	LocationIndoor   Location = "indoor"
	LocationOutdoor  Location = "outdoor"
	LocationBar      Location = "bar"
	LocationTerrace  Location = "terrace"
	LocationMainRoom Location = "main-room"
)

type Feature string

const (
	FeatureWindowView           Feature = "window-view"
	FeatureNearFireplace        Feature = "near-fireplace"
	FeaturePrivate              Feature = "private"
	FeatureWheelchairAccessible Feature = "wheelchair-accessible"
)

type Table struct {
	ID                 string    `json:"id"`
	TableNumber        int       `json:"tableNumber"`
	Seats              int       `json:"seats"`
	IsAvailable        bool      `json:"isAvailable"`
	Location           Location  `json:"location"`
	SpecialFeatures    []Feature `json:"specialFeatures"`
	CurrentReservation *string   `json:"currentReservation"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Claim marks the table as held by the given reservation.
func (t *Table) Claim(reservationID string) {
	id := reservationID
	t.IsAvailable = false
	t.CurrentReservation = &id
}

func (t *Table) Release() {
	t.IsAvailable = true
	t.CurrentReservation = nil
}

// HeldBy reports whether the table's current reservation is reservationID.
func (t *Table) HeldBy(reservationID string) bool {
	return t.CurrentReservation != nil && *t.CurrentReservation == reservationID
}

const (
	MinSeats = 1
	MaxSeats = 10
)

// SeatsInRange reports whether seats is a valid table size.
func SeatsInRange(seats int) bool {
	return seats >= MinSeats && seats <= MaxSeats
}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// LiveReservationStatuses hold a table slot.
var LiveReservationStatuses = []ReservationStatus{ReservationPending, ReservationConfirmed}

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return true
	}
	return false
}

func (s ReservationStatus) Live() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type TableSummary struct {
	ID          string   `json:"id"`
	TableNumber int      `json:"tableNumber"`
	Seats       int      `json:"seats"`
	Location    Location `json:"location"`
	IsAvailable bool     `json:"isAvailable"`
}

type Reservation struct {
	ID             string            `json:"id"`
	UserID         string            `json:"userId"`
	TableID        string            `json:"tableId"`
	TableNumber    int               `json:"tableNumber"`
	Name           string            `json:"name"`
	Surname        string            `json:"surname"`
	Email          string            `json:"email"`
	Time           time.Time         `json:"time"`
	GuestNumber    int               `json:"guestNumber"`
	Status         ReservationStatus `json:"status"`
	SpecialMessage string            `json:"specialMessage"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`

	User  *UserSummary  `json:"user,omitempty"`
	Table *TableSummary `json:"table,omitempty"`
}

// TableSync describes the table writes that accompany a reservation write.
// Release is applied before Claim.
type TableSync struct {
	Release string
	// ReleaseNumber is used to find the table to release when Release is empty.
	ReleaseNumber int
	Claim         string
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type MenuItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
	CategoryID  string    `json:"categoryId"`
	Category    *Category `json:"category,omitempty"`
	Description string    `json:"description"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
)

type User struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Surname       string        `json:"surname"`
	Username      string        `json:"username"`
	Email         string        `json:"email"`
	PasswordHash  string        `json:"-"`
	Role          Role          `json:"role"`
	AccountStatus AccountStatus `json:"accountStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// NormalizeTime brings a requested time to the precision the store keeps, so
// that slot comparisons are exact.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
