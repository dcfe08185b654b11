package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"

	log "github.com/sirupsen/logrus"
)

// MemoryStore keeps every entity in process memory. It enforces the same
// constraints as the PostgreSQL schema: unique table numbers, category names,
// emails and usernames, table sizes, one live reservation per table slot, and
// menu items pointing at existing categories.
type MemoryStore struct {
	mu           sync.Mutex
	now          func() time.Time
	tables       map[string]domain.Table
	reservations map[string]domain.Reservation
	categories   map[string]domain.Category
	menuItems    map[string]domain.MenuItem
	takeaways    map[string]domain.Takeaway
	users        map[string]domain.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:          time.Now,
		tables:       map[string]domain.Table{},
		reservations: map[string]domain.Reservation{},
		categories:   map[string]domain.Category{},
		menuItems:    map[string]domain.MenuItem{},
		takeaways:    map[string]domain.Takeaway{},
		users:        map[string]domain.User{},
	}
}

const msgSeatsRange = "Table seats must be between 1 and 10"

func (s *MemoryStore) stamp() time.Time {
	return s.now().UTC()
}

func copyTable(t domain.Table) *domain.Table {
	t.SpecialFeatures = append([]domain.Feature{}, t.SpecialFeatures...)
	if t.CurrentReservation != nil {
		id := *t.CurrentReservation
		t.CurrentReservation = &id
	}
	return &t
}

// Tables

func (s *MemoryStore) CreateTable(ctx context.Context, t *domain.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tableNumberTaken(t.TableNumber, "") {
		return domain.Validation("Table number must be unique")
	}
	if !domain.SeatsInRange(t.Seats) {
		return domain.Validation(msgSeatsRange)
	}
	t.CreatedAt = s.stamp()
	t.UpdatedAt = t.CreatedAt
	s.tables[t.ID] = *copyTable(*t)
	return nil
}

func (s *MemoryStore) tableNumberTaken(number int, selfID string) bool {
	for _, t := range s.tables {
		if t.TableNumber == number && t.ID != selfID {
			return true
		}
	}
	return false
}

func (s *MemoryStore) ListTables(ctx context.Context) ([]domain.Table, error) {
	return s.listTables(func(domain.Table) bool { return true }), nil
}

func (s *MemoryStore) ListAvailableTables(ctx context.Context, minSeats int) ([]domain.Table, error) {
	return s.listTables(func(t domain.Table) bool {
		return t.IsAvailable && t.Seats >= minSeats
	}), nil
}

func (s *MemoryStore) listTables(keep func(domain.Table) bool) []domain.Table {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []domain.Table{}
	for _, t := range s.tables {
		if keep(t) {
			tables = append(tables, *copyTable(t))
		}
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].TableNumber < tables[j].TableNumber })
	return tables
}

func (s *MemoryStore) GetTable(ctx context.Context, id string) (*domain.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[id]
	if !ok {
		return nil, domain.NotFound(domain.MsgTableNotFound)
	}
	return copyTable(t), nil
}

func (s *MemoryStore) GetTableByNumber(ctx context.Context, number int) (*domain.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tables {
		if t.TableNumber == number {
			return copyTable(t), nil
		}
	}
	return nil, domain.NotFound(domain.MsgTableNotFound)
}

// UpdateTable keeps the stored current reservation.
func (s *MemoryStore) UpdateTable(ctx context.Context, t *domain.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tables[t.ID]
	if !ok {
		return domain.NotFound(domain.MsgTableNotFound)
	}
	if s.tableNumberTaken(t.TableNumber, t.ID) {
		return domain.Validation("Table number must be unique")
	}
	if !domain.SeatsInRange(t.Seats) {
		return domain.Validation(msgSeatsRange)
	}

	stored.TableNumber = t.TableNumber
	stored.Seats = t.Seats
	stored.IsAvailable = t.IsAvailable
	stored.Location = t.Location
	stored.SpecialFeatures = t.SpecialFeatures
	stored.UpdatedAt = s.stamp()
	s.tables[t.ID] = *copyTable(stored)

	t.UpdatedAt = stored.UpdatedAt
	t.CurrentReservation = copyTable(stored).CurrentReservation
	return nil
}

// DeleteTable detaches reservations that pointed at the table.
func (s *MemoryStore) DeleteTable(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[id]; !ok {
		return 0, nil
	}
	delete(s.tables, id)
	for rid, r := range s.reservations {
		if r.TableID == id {
			r.TableID = ""
			s.reservations[rid] = r
		}
	}
	return 1, nil
}

func (s *MemoryStore) ReleaseStaleTable(ctx context.Context, tableID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[tableID]
	if !ok || (t.CurrentReservation == nil && t.IsAvailable) {
		return false, nil
	}
	if t.CurrentReservation != nil {
		if r, ok := s.reservations[*t.CurrentReservation]; ok && r.Status.Live() {
			return false, nil
		}
	}

	t.Release()
	t.UpdatedAt = s.stamp()
	s.tables[tableID] = t
	return true, nil
}

// Reservations

func (s *MemoryStore) CountLiveAt(ctx context.Context, tableID string, at time.Time, excludeID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLiveAt(tableID, at, excludeID), nil
}

func (s *MemoryStore) countLiveAt(tableID string, at time.Time, excludeID string) int {
	n := 0
	for _, r := range s.reservations {
		if r.TableID == tableID && r.Time.Equal(at) && r.Status.Live() && r.ID != excludeID {
			n++
		}
	}
	return n
}

func (s *MemoryStore) CountLiveForTable(ctx context.Context, tableID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.reservations {
		if r.TableID == tableID && r.Status.Live() {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CreateReservation(ctx context.Context, r *domain.Reservation, sync domain.TableSync) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Status.Live() && r.TableID != "" && s.countLiveAt(r.TableID, r.Time, r.ID) > 0 {
		return domain.Conflict(domain.MsgSlotTaken)
	}
	if sync.Claim != "" {
		if _, ok := s.tables[sync.Claim]; !ok {
			return domain.NotFound(domain.MsgTableNotFound)
		}
	}

	r.CreatedAt = s.stamp()
	r.UpdatedAt = r.CreatedAt
	stored := *r
	stored.User, stored.Table = nil, nil
	s.reservations[r.ID] = stored
	s.applyTableSync(r.ID, sync)
	return nil
}

func (s *MemoryStore) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	if !ok {
		return nil, domain.NotFound(domain.MsgReservationNotFound)
	}
	r.User = s.userSummary(r.UserID)
	if t, ok := s.tables[r.TableID]; ok {
		r.Table = &domain.TableSummary{
			ID:          t.ID,
			TableNumber: t.TableNumber,
			Seats:       t.Seats,
			Location:    t.Location,
			IsAvailable: t.IsAvailable,
		}
	}
	return &r, nil
}

func (s *MemoryStore) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservations := []domain.Reservation{}
	for _, r := range s.reservations {
		r.User = s.userSummary(r.UserID)
		reservations = append(reservations, r)
	}
	sort.Slice(reservations, func(i, j int) bool { return reservations[i].Time.Before(reservations[j].Time) })
	return reservations, nil
}

func (s *MemoryStore) UpdateReservation(ctx context.Context, r *domain.Reservation, sync domain.TableSync) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[r.ID]; !ok {
		return domain.NotFound(domain.MsgReservationNotFound)
	}
	if r.Status.Live() && r.TableID != "" && s.countLiveAt(r.TableID, r.Time, r.ID) > 0 {
		return domain.Conflict(domain.MsgSlotTaken)
	}
	if sync.Claim != "" {
		if _, ok := s.tables[sync.Claim]; !ok {
			return domain.NotFound(domain.MsgTableNotFound)
		}
	}

	r.UpdatedAt = s.stamp()
	stored := *r
	stored.User, stored.Table = nil, nil
	s.reservations[r.ID] = stored
	s.applyTableSync(r.ID, sync)
	return nil
}

func (s *MemoryStore) DeleteReservation(ctx context.Context, id string, sync domain.TableSync) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[id]; !ok {
		return domain.NotFound(domain.MsgReservationNotFound)
	}
	delete(s.reservations, id)
	s.applyTableSync(id, sync)
	return nil
}

// applyTableSync expects the claim target to have been checked by the caller.
// A table is released only while it is held by reservationID.
func (s *MemoryStore) applyTableSync(reservationID string, sync domain.TableSync) {
	released := false
	for id, t := range s.tables {
		target := (sync.Release != "" && id == sync.Release) ||
			(sync.Release == "" && sync.ReleaseNumber > 0 && t.TableNumber == sync.ReleaseNumber)
		if target && t.HeldBy(reservationID) {
			t.Release()
			t.UpdatedAt = s.stamp()
			s.tables[id] = t
			released = true
		}
	}
	if !released && (sync.Release != "" || sync.ReleaseNumber > 0) {
		log.WithFields(log.Fields{
			"reservationId": reservationID,
			"tableId":       sync.Release,
			"tableNumber":   sync.ReleaseNumber,
		}).Warn("table to release not found or held by another reservation")
	}

	if t, ok := s.tables[sync.Claim]; ok {
		t.Claim(reservationID)
		t.UpdatedAt = s.stamp()
		s.tables[sync.Claim] = t
	}
}

func (s *MemoryStore) userSummary(id string) *domain.UserSummary {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return u.Summary()
}

// Menu

func (s *MemoryStore) categoryNameTaken(name, selfID string) bool {
	for _, c := range s.categories {
		if c.Name == name && c.ID != selfID {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreateCategory(ctx context.Context, c *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.categoryNameTaken(c.Name, "") {
		return domain.Validation("Category name must be unique")
	}
	c.CreatedAt = s.stamp()
	c.UpdatedAt = c.CreatedAt
	s.categories[c.ID] = *c
	return nil
}

func (s *MemoryStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := []domain.Category{}
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (s *MemoryStore) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, domain.NotFound(domain.MsgCategoryNotFound)
	}
	return &c, nil
}

func (s *MemoryStore) UpdateCategory(ctx context.Context, c *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.categories[c.ID]
	if !ok {
		return domain.NotFound(domain.MsgCategoryNotFound)
	}
	if s.categoryNameTaken(c.Name, c.ID) {
		return domain.Validation("Category name must be unique")
	}
	stored.Name = c.Name
	stored.UpdatedAt = s.stamp()
	s.categories[c.ID] = stored
	*c = stored
	return nil
}

func (s *MemoryStore) DeleteCategory(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return 0, nil
	}
	for _, item := range s.menuItems {
		if item.CategoryID == id {
			return 0, domain.Conflict("Category still has menu items")
		}
	}
	delete(s.categories, id)
	return 1, nil
}

func (s *MemoryStore) withCategory(item domain.MenuItem) domain.MenuItem {
	if c, ok := s.categories[item.CategoryID]; ok {
		item.Category = &c
	}
	return item
}

func (s *MemoryStore) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[item.CategoryID]; !ok {
		return domain.NotFound(domain.MsgCategoryNotFound)
	}
	item.CreatedAt = s.stamp()
	item.UpdatedAt = item.CreatedAt
	stored := *item
	stored.Category = nil
	s.menuItems[item.ID] = stored
	return nil
}

func (s *MemoryStore) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := []domain.MenuItem{}
	for _, item := range s.menuItems {
		items = append(items, s.withCategory(item))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *MemoryStore) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.menuItems[id]
	if !ok {
		return nil, domain.NotFound(domain.MsgMenuItemNotFound)
	}
	item = s.withCategory(item)
	return &item, nil
}

func (s *MemoryStore) GetMenuItems(ctx context.Context, ids []string) ([]domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getMenuItems(ids), nil
}

func (s *MemoryStore) getMenuItems(ids []string) []domain.MenuItem {
	items := []domain.MenuItem{}
	for _, id := range ids {
		if item, ok := s.menuItems[id]; ok {
			items = append(items, s.withCategory(item))
		}
	}
	return items
}

func (s *MemoryStore) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.menuItems[item.ID]
	if !ok {
		return domain.NotFound(domain.MsgMenuItemNotFound)
	}
	if _, ok := s.categories[item.CategoryID]; !ok {
		return domain.NotFound(domain.MsgCategoryNotFound)
	}
	item.CreatedAt = stored.CreatedAt
	item.UpdatedAt = s.stamp()
	updated := *item
	updated.Category = nil
	s.menuItems[item.ID] = updated
	return nil
}

func (s *MemoryStore) DeleteMenuItem(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menuItems[id]; !ok {
		return 0, nil
	}
	delete(s.menuItems, id)
	return 1, nil
}

// Takeaways

func (s *MemoryStore) CreateTakeaway(ctx context.Context, t *domain.Takeaway) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.RecalculateTotal()
	t.CreatedAt = s.stamp()
	t.UpdatedAt = t.CreatedAt
	s.putTakeaway(*t)
	return nil
}

func (s *MemoryStore) putTakeaway(t domain.Takeaway) {
	t.Items = append([]domain.TakeawayItem{}, t.Items...)
	t.User, t.PopulatedItems = nil, nil
	s.takeaways[t.ID] = t
}

func (s *MemoryStore) populate(t domain.Takeaway) domain.Takeaway {
	t.Items = append([]domain.TakeawayItem{}, t.Items...)
	t.User = s.userSummary(t.UserID)
	t.PopulatedItems = s.getMenuItems(t.MenuItemIDs())
	return t
}

func (s *MemoryStore) GetTakeaway(ctx context.Context, id string) (*domain.Takeaway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.takeaways[id]
	if !ok {
		return nil, domain.NotFound(domain.MsgTakeawayNotFound)
	}
	t = s.populate(t)
	return &t, nil
}

func (s *MemoryStore) ListTakeaways(ctx context.Context) ([]domain.Takeaway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	takeaways := []domain.Takeaway{}
	for _, t := range s.takeaways {
		takeaways = append(takeaways, s.populate(t))
	}
	sort.Slice(takeaways, func(i, j int) bool { return takeaways[i].CreatedAt.After(takeaways[j].CreatedAt) })
	return takeaways, nil
}

func (s *MemoryStore) UpdateTakeaway(ctx context.Context, t *domain.Takeaway) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.takeaways[t.ID]; !ok {
		return domain.NotFound(domain.MsgTakeawayNotFound)
	}
	t.RecalculateTotal()
	t.UpdatedAt = s.stamp()
	s.putTakeaway(*t)
	return nil
}

// Users

func (s *MemoryStore) userConflict(u *domain.User) error {
	for _, other := range s.users {
		if other.ID == u.ID {
			continue
		}
		if other.Email == u.Email {
			return domain.Validation("Email already exists")
		}
		if other.Username == u.Username {
			return domain.Validation("Username already exists")
		}
	}
	return nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.userConflict(u); err != nil {
		return err
	}
	u.CreatedAt = s.stamp()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) getUserBy(match func(domain.User) bool) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, domain.NotFound(domain.MsgUserNotFound)
}

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getUserBy(func(u domain.User) bool { return u.ID == id })
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUserBy(func(u domain.User) bool { return u.Email == email })
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getUserBy(func(u domain.User) bool { return u.Username == username })
}

func (s *MemoryStore) UpdateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[u.ID]
	if !ok {
		return domain.NotFound(domain.MsgUserNotFound)
	}
	if err := s.userConflict(u); err != nil {
		return err
	}
	u.CreatedAt = stored.CreatedAt
	u.UpdatedAt = s.stamp()
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return 0, nil
	}
	delete(s.users, id)
	return 1, nil
}
