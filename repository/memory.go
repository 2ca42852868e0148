package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"salonqueue-backend/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory implementation of every repository
// interface behind one lock. It backs the unit tests and local runs
// without Postgres, and honors the same contracts as the gorm store:
// deterministic (time_joined, id) ordering and compare-and-set
// transitions.
type MemoryStore struct {
	mu sync.RWMutex

	users           map[uuid.UUID]*models.User
	services        map[uuid.UUID]*models.Service
	serviceProducts map[uuid.UUID][]models.ServiceProduct
	products        map[uuid.UUID]*models.Product
	bookings        map[uuid.UUID]*models.Booking
	entries         map[uuid.UUID]*models.QueueEntry
	notifications   []models.Notification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:           make(map[uuid.UUID]*models.User),
		services:        make(map[uuid.UUID]*models.Service),
		serviceProducts: make(map[uuid.UUID][]models.ServiceProduct),
		products:        make(map[uuid.UUID]*models.Product),
		bookings:        make(map[uuid.UUID]*models.Booking),
		entries:         make(map[uuid.UUID]*models.QueueEntry),
	}
}

func (s *MemoryStore) Users() *MemoryUsers                 { return &MemoryUsers{s} }
func (s *MemoryStore) Services() *MemoryServices           { return &MemoryServices{s} }
func (s *MemoryStore) Products() *MemoryProducts           { return &MemoryProducts{s} }
func (s *MemoryStore) Bookings() *MemoryBookings           { return &MemoryBookings{s} }
func (s *MemoryStore) Queue() *MemoryQueue                 { return &MemoryQueue{s} }
func (s *MemoryStore) Notifications() *MemoryNotifications { return &MemoryNotifications{s} }

func copyBooking(b *models.Booking) *models.Booking {
	out := *b
	out.Items = append([]models.BookingService(nil), b.Items...)
	return &out
}

// copyEntry returns a detached copy with its booking attached.
func (s *MemoryStore) copyEntry(e *models.QueueEntry) *models.QueueEntry {
	out := *e
	if b, ok := s.bookings[e.BookingID]; ok {
		out.Booking = *copyBooking(b)
	}
	return &out
}

// --- users ---

type MemoryUsers struct {
	s *MemoryStore
}

func (r *MemoryUsers) ByID(id uuid.UUID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (r *MemoryUsers) ByEmail(email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, user := range r.s.users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *MemoryUsers) Create(u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	stored := *u
	r.s.users[u.ID] = &stored
	return nil
}

func (r *MemoryUsers) UpdateLastLogin(id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return models.ErrNotFound
	}
	user.LastLogin = &at
	return nil
}

func (r *MemoryUsers) CreditLoyalty(id uuid.UUID, points int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return models.ErrNotFound
	}
	user.LoyaltyPoints += points
	return nil
}

// --- catalog services ---

type MemoryServices struct {
	s *MemoryStore
}

func (r *MemoryServices) ByID(id uuid.UUID) (*models.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	service, ok := r.s.services[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *service
	return &out, nil
}

func (r *MemoryServices) All() ([]models.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Service, 0, len(r.s.services))
	for _, service := range r.s.services {
		out = append(out, *service)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryServices) Create(service *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	stored := *service
	r.s.services[service.ID] = &stored
	return nil
}

func (r *MemoryServices) Save(service *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.services[service.ID]; !ok {
		return models.ErrNotFound
	}
	stored := *service
	r.s.services[service.ID] = &stored
	return nil
}

func (r *MemoryServices) Delete(id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.services[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.s.services, id)
	return nil
}

func (r *MemoryServices) ConsumedProducts(serviceID uuid.UUID) ([]models.ServiceProduct, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	links := r.s.serviceProducts[serviceID]
	out := make([]models.ServiceProduct, len(links))
	copy(out, links)
	for i := range out {
		if p, ok := r.s.products[out[i].ProductID]; ok {
			out[i].Product = *p
		}
	}
	return out, nil
}

func (r *MemoryServices) SetConsumedProducts(serviceID uuid.UUID, links []models.ServiceProduct) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := make([]models.ServiceProduct, len(links))
	copy(stored, links)
	for i := range stored {
		if stored[i].ID == uuid.Nil {
			stored[i].ID = uuid.New()
		}
		stored[i].ServiceID = serviceID
	}
	r.s.serviceProducts[serviceID] = stored
	return nil
}

// --- products ---

type MemoryProducts struct {
	s *MemoryStore
}

func (r *MemoryProducts) ByID(id uuid.UUID) (*models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	product, ok := r.s.products[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *product
	return &out, nil
}

func (r *MemoryProducts) All() ([]models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Product, 0, len(r.s.products))
	for _, product := range r.s.products {
		out = append(out, *product)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryProducts) Create(p *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	stored := *p
	r.s.products[p.ID] = &stored
	return nil
}

func (r *MemoryProducts) Save(p *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return models.ErrNotFound
	}
	stored := *p
	r.s.products[p.ID] = &stored
	return nil
}

func (r *MemoryProducts) Delete(id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *MemoryProducts) LowStock() ([]models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Product
	for _, product := range r.s.products {
		if product.IsActive && product.IsLowStock() {
			out = append(out, *product)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryProducts) ConsumeStock(id uuid.UUID, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	product, ok := r.s.products[id]
	if !ok {
		return models.ErrNotFound
	}
	if product.StockQuantity < quantity {
		return models.ErrInsufficientStock
	}
	product.StockQuantity -= quantity
	product.UsageCount += quantity
	return nil
}

func (r *MemoryProducts) AddStock(id uuid.UUID, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	product, ok := r.s.products[id]
	if !ok {
		return models.ErrNotFound
	}
	product.StockQuantity += quantity
	return nil
}

// --- bookings ---

type MemoryBookings struct {
	s *MemoryStore
}

func (r *MemoryBookings) Create(b *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.s.bookings[b.ID] = copyBooking(b)
	return nil
}

func (r *MemoryBookings) ByID(id uuid.UUID) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyBooking(booking), nil
}

func (r *MemoryBookings) ForCustomer(customerID uuid.UUID) ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Booking
	for _, booking := range r.s.bookings {
		if booking.CustomerID == customerID {
			out = append(out, *copyBooking(booking))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryBookings) All() ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Booking, 0, len(r.s.bookings))
	for _, booking := range r.s.bookings {
		out = append(out, *copyBooking(booking))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryBookings) AddLineItem(bookingID uuid.UUID, item *models.BookingService) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	booking, ok := r.s.bookings[bookingID]
	if !ok {
		return models.ErrNotFound
	}
	for _, existing := range booking.Items {
		if existing.ServiceID == item.ServiceID {
			return models.ErrDuplicateLineItem
		}
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.BookingID = bookingID
	booking.Items = append(booking.Items, *item)
	return nil
}

func (r *MemoryBookings) SaveTotals(b *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	booking, ok := r.s.bookings[b.ID]
	if !ok {
		return models.ErrNotFound
	}
	booking.TotalAmount = b.TotalAmount
	booking.TotalDuration = b.TotalDuration
	return nil
}

func (r *MemoryBookings) ConfirmAndEnqueue(bookingID uuid.UUID, entry *models.QueueEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	booking, ok := r.s.bookings[bookingID]
	if !ok {
		return models.ErrNotFound
	}
	if booking.IsConfirmed {
		return models.ErrAlreadyConfirmed
	}
	booking.IsConfirmed = true
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	stored := *entry
	stored.Booking = models.Booking{}
	r.s.entries[entry.ID] = &stored
	return nil
}

// --- queue ---

type MemoryQueue struct {
	s *MemoryStore
}

func (r *MemoryQueue) ByID(id uuid.UUID) (*models.QueueEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	entry, ok := r.s.entries[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return r.s.copyEntry(entry), nil
}

func sortEntries(entries []models.QueueEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TimeJoined.Equal(entries[j].TimeJoined) {
			return strings.Compare(entries[i].ID.String(), entries[j].ID.String()) < 0
		}
		return entries[i].TimeJoined.Before(entries[j].TimeJoined)
	})
}

func (r *MemoryQueue) Active() ([]models.QueueEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.QueueEntry
	for _, entry := range r.s.entries {
		if entry.Status == models.StatusWaiting {
			out = append(out, *r.s.copyEntry(entry))
		}
	}
	sortEntries(out)
	return out, nil
}

func (r *MemoryQueue) All() ([]models.QueueEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.QueueEntry, 0, len(r.s.entries))
	for _, entry := range r.s.entries {
		out = append(out, *r.s.copyEntry(entry))
	}
	sortEntries(out)
	return out, nil
}

func (r *MemoryQueue) ActiveEntryForCustomer(customerID uuid.UUID) (*models.QueueEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, entry := range r.s.entries {
		if entry.CustomerID == customerID && entry.Status == models.StatusWaiting {
			return r.s.copyEntry(entry), nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *MemoryQueue) Transition(id uuid.UUID, from []string, change StatusChange) (*models.QueueEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entry, ok := r.s.entries[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	allowed := false
	for _, status := range from {
		if entry.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, models.ErrInvalidTransition
	}
	entry.Status = change.To
	if change.TimeStarted != nil {
		entry.TimeStarted = change.TimeStarted
	}
	if change.TimeCompleted != nil {
		entry.TimeCompleted = change.TimeCompleted
	}
	if change.StaffAssignedID != nil {
		entry.StaffAssignedID = change.StaffAssignedID
	}
	return r.s.copyEntry(entry), nil
}

func (r *MemoryQueue) Save(e *models.QueueEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entry, ok := r.s.entries[e.ID]
	if !ok {
		return models.ErrNotFound
	}
	entry.Notes = e.Notes
	entry.StaffAssignedID = e.StaffAssignedID
	return nil
}

// --- notifications ---

type MemoryNotifications struct {
	s *MemoryStore
}

func (r *MemoryNotifications) Create(n *models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.s.notifications = append(r.s.notifications, *n)
	return nil
}

func (r *MemoryNotifications) ForUser(userID uuid.UUID) ([]models.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Notification
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}
