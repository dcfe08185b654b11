package service

import (
	"context"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"
	"restaurant-backend/restaurant-svc/internal/storage"
)

type TableRepository interface {
	CreateTable(ctx context.Context, table *domain.Table) error
	ListTables(ctx context.Context) ([]domain.Table, error)
	GetTable(ctx context.Context, id string) (*domain.Table, error)
	GetTableByNumber(ctx context.Context, number int) (*domain.Table, error)
	UpdateTable(ctx context.Context, table *domain.Table) error
	DeleteTable(ctx context.Context, id string) (int64, error)
	// ListAvailableTables returns tables flagged available with at least minSeats seats.
	ListAvailableTables(ctx context.Context, minSeats int) ([]domain.Table, error)
}

// ReservationRepository persists reservations. Every write takes a TableSync
// that the implementation applies in the same unit of work.
type ReservationRepository interface {
	// CountLiveAt counts pending or confirmed reservations on the table at
	// exactly the given time, ignoring excludeID when it is set.
	CountLiveAt(ctx context.Context, tableID string, at time.Time, excludeID string) (int, error)
	CountLiveForTable(ctx context.Context, tableID string) (int, error)
	CreateReservation(ctx context.Context, r *domain.Reservation, sync domain.TableSync) error
	GetReservation(ctx context.Context, id string) (*domain.Reservation, error)
	ListReservations(ctx context.Context) ([]domain.Reservation, error)
	UpdateReservation(ctx context.Context, r *domain.Reservation, sync domain.TableSync) error
	DeleteReservation(ctx context.Context, id string, sync domain.TableSync) error
}

// TableReconcileStore releases a table whose current reservation is gone or no
// longer live. It reports whether anything changed.
type TableReconcileStore interface {
	ReleaseStaleTable(ctx context.Context, tableID string) (bool, error)
}

type MenuRepository interface {
	CreateCategory(ctx context.Context, c *domain.Category) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id string) (int64, error)

	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
	// GetMenuItems returns the items that exist among ids.
	GetMenuItems(ctx context.Context, ids []string) ([]domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) (int64, error)
}

// TakeawayRepository implementations recompute the total before every write.
type TakeawayRepository interface {
	CreateTakeaway(ctx context.Context, t *domain.Takeaway) error
	GetTakeaway(ctx context.Context, id string) (*domain.Takeaway, error)
	ListTakeaways(ctx context.Context) ([]domain.Takeaway, error)
	UpdateTakeaway(ctx context.Context, t *domain.Takeaway) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
	DeleteUser(ctx context.Context, id string) (int64, error)
}

// SlotLocker serialises writers competing for one table slot.
type SlotLocker interface {
	Lock(ctx context.Context, tableID string, at time.Time) (string, error)
	Unlock(ctx context.Context, tableID string, at time.Time, token string) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, event domain.Event) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

type TableServiceInterface interface {
	Create(ctx context.Context, table *domain.Table) error
	List(ctx context.Context) ([]domain.Table, error)
	Get(ctx context.Context, id string) (*domain.Table, error)
	Update(ctx context.Context, id string, update TableUpdate) (*domain.Table, error)
	Delete(ctx context.Context, id string) error
	FindAvailable(ctx context.Context, minSeats int, at time.Time) ([]domain.Table, error)
}

type ReservationServiceInterface interface {
	Create(ctx context.Context, r *domain.Reservation) error
	List(ctx context.Context) ([]domain.Reservation, error)
	Get(ctx context.Context, id string) (*domain.Reservation, error)
	Update(ctx context.Context, id string, update ReservationUpdate) (*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
}

type MenuServiceInterface interface {
	CreateCategory(ctx context.Context, c *domain.Category) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id string) error

	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error
}

type TakeawayServiceInterface interface {
	Create(ctx context.Context, t *domain.Takeaway) error
	List(ctx context.Context) ([]domain.Takeaway, error)
	Get(ctx context.Context, id string) (*domain.Takeaway, error)
	UpdateStatus(ctx context.Context, id string, status domain.TakeawayStatus) (*domain.Takeaway, error)
	Cancel(ctx context.Context, id string) (*domain.Takeaway, error)
	QRCode(ctx context.Context, id string) ([]byte, error)
}

type UserServiceInterface interface {
	Signup(ctx context.Context, u *domain.User, password string) error
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	EnsureAdmin(ctx context.Context, email, password string) error
}

var (
	_ TableRepository       = (*storage.PostgresRepository)(nil)
	_ ReservationRepository = (*storage.PostgresRepository)(nil)
	_ TableReconcileStore   = (*storage.PostgresRepository)(nil)
	_ MenuRepository        = (*storage.PostgresRepository)(nil)
	_ TakeawayRepository    = (*storage.PostgresRepository)(nil)
	_ UserRepository        = (*storage.PostgresRepository)(nil)
	_ TableRepository       = (*storage.MemoryStore)(nil)
	_ ReservationRepository = (*storage.MemoryStore)(nil)
	_ TableReconcileStore   = (*storage.MemoryStore)(nil)
	_ MenuRepository        = (*storage.MemoryStore)(nil)
	_ TakeawayRepository    = (*storage.MemoryStore)(nil)
	_ UserRepository        = (*storage.MemoryStore)(nil)
	_ SlotLocker            = (*storage.RedisSlotLocker)(nil)
	_ EventPublisher        = (*storage.KafkaPublisher)(nil)
)
