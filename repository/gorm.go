package repository

import (
	"errors"
	"time"

	"salonqueue-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}

// --- users ---

type GormUsers struct {
	db *gorm.DB
}

func NewGormUsers(db *gorm.DB) *GormUsers {
	return &GormUsers{db: db}
}

func (r *GormUsers) ByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *GormUsers) ByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *GormUsers) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *GormUsers) UpdateLastLogin(id uuid.UUID, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("last_login", &at).Error
}

func (r *GormUsers) CreditLoyalty(id uuid.UUID, points int) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).
		Update("loyalty_points", gorm.Expr("loyalty_points + ?", points))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// --- catalog services ---

type GormServices struct {
	db *gorm.DB
}

func NewGormServices(db *gorm.DB) *GormServices {
	return &GormServices{db: db}
}

func (r *GormServices) ByID(id uuid.UUID) (*models.Service, error) {
	var service models.Service
	if err := r.db.First(&service, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &service, nil
}

func (r *GormServices) All() ([]models.Service, error) {
	var services []models.Service
	if err := r.db.Order("name asc").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *GormServices) Create(s *models.Service) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return r.db.Create(s).Error
}

func (r *GormServices) Save(s *models.Service) error {
	return r.db.Save(s).Error
}

func (r *GormServices) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Service{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *GormServices) ConsumedProducts(serviceID uuid.UUID) ([]models.ServiceProduct, error) {
	var links []models.ServiceProduct
	if err := r.db.Preload("Product").
		Where("service_id = ?", serviceID).
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *GormServices) SetConsumedProducts(serviceID uuid.UUID, links []models.ServiceProduct) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", serviceID).
			Delete(&models.ServiceProduct{}).Error; err != nil {
			return err
		}
		for i := range links {
			links[i].ServiceID = serviceID
			if err := tx.Create(&links[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// --- products ---

type GormProducts struct {
	db *gorm.DB
}

func NewGormProducts(db *gorm.DB) *GormProducts {
	return &GormProducts{db: db}
}

func (r *GormProducts) ByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &product, nil
}

func (r *GormProducts) All() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("name asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProducts) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

func (r *GormProducts) Save(p *models.Product) error {
	return r.db.Save(p).Error
}

func (r *GormProducts) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *GormProducts) LowStock() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("stock_quantity <= min_stock_level AND is_active = ?", true).
		Order("name asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ConsumeStock is a conditional decrement so stock never goes negative
// under concurrent settlements.
func (r *GormProducts) ConsumeStock(id uuid.UUID, quantity int) error {
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"usage_count":    gorm.Expr("usage_count + ?", quantity),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var product models.Product
		if err := r.db.First(&product, "id = ?", id).Error; err != nil {
			return translateNotFound(err)
		}
		return models.ErrInsufficientStock
	}
	return nil
}

func (r *GormProducts) AddStock(id uuid.UUID, quantity int) error {
	result := r.db.Model(&models.Product{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// --- bookings ---

type GormBookings struct {
	db *gorm.DB
}

func NewGormBookings(db *gorm.DB) *GormBookings {
	return &GormBookings{db: db}
}

func (r *GormBookings) Create(b *models.Booking) error {
	return r.db.Create(b).Error
}

func (r *GormBookings) ByID(id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.Preload("Items").First(&booking, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &booking, nil
}

func (r *GormBookings) ForCustomer(customerID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookings) All() ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.Preload("Items").
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookings) AddLineItem(bookingID uuid.UUID, item *models.BookingService) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.BookingService{}).
			Where("booking_id = ? AND service_id = ?", bookingID, item.ServiceID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return models.ErrDuplicateLineItem
		}
		item.BookingID = bookingID
		return tx.Create(item).Error
	})
}

func (r *GormBookings) SaveTotals(b *models.Booking) error {
	return r.db.Model(&models.Booking{}).Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"total_amount":   b.TotalAmount,
			"total_duration": b.TotalDuration,
		}).Error
}

// ConfirmAndEnqueue wins or loses the confirmation in a single conditional
// update, then creates the queue entry in the same transaction. Two
// concurrent confirms yield exactly one entry.
func (r *GormBookings) ConfirmAndEnqueue(bookingID uuid.UUID, entry *models.QueueEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Booking{}).
			Where("id = ? AND is_confirmed = ?", bookingID, false).
			Update("is_confirmed", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var booking models.Booking
			if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
				return translateNotFound(err)
			}
			return models.ErrAlreadyConfirmed
		}
		return tx.Create(entry).Error
	})
}

// --- queue ---

type GormQueue struct {
	db *gorm.DB
}

func NewGormQueue(db *gorm.DB) *GormQueue {
	return &GormQueue{db: db}
}

func (r *GormQueue) ByID(id uuid.UUID) (*models.QueueEntry, error) {
	var entry models.QueueEntry
	if err := r.db.Preload("Booking.Items").
		First(&entry, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &entry, nil
}

func (r *GormQueue) Active() ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	if err := r.db.Preload("Booking.Items").
		Where("status = ?", models.StatusWaiting).
		Order("time_joined asc, id asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormQueue) All() ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	if err := r.db.Preload("Booking.Items").
		Order("time_joined asc, id asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormQueue) ActiveEntryForCustomer(customerID uuid.UUID) (*models.QueueEntry, error) {
	var entry models.QueueEntry
	if err := r.db.Preload("Booking.Items").
		Where("customer_id = ? AND status = ?", customerID, models.StatusWaiting).
		First(&entry).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &entry, nil
}

// Transition is a compare-and-set on status: the update only lands when
// the current status is still in from, so concurrent transition attempts
// on one entry serialize with exactly one winner.
func (r *GormQueue) Transition(id uuid.UUID, from []string, change StatusChange) (*models.QueueEntry, error) {
	updates := map[string]interface{}{"status": change.To}
	if change.TimeStarted != nil {
		updates["time_started"] = change.TimeStarted
	}
	if change.TimeCompleted != nil {
		updates["time_completed"] = change.TimeCompleted
	}
	if change.StaffAssignedID != nil {
		updates["staff_assigned_id"] = change.StaffAssignedID
	}

	result := r.db.Model(&models.QueueEntry{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		var entry models.QueueEntry
		if err := r.db.First(&entry, "id = ?", id).Error; err != nil {
			return nil, translateNotFound(err)
		}
		return nil, models.ErrInvalidTransition
	}
	return r.ByID(id)
}

func (r *GormQueue) Save(e *models.QueueEntry) error {
	return r.db.Model(&models.QueueEntry{}).Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"notes":             e.Notes,
			"staff_assigned_id": e.StaffAssignedID,
		}).Error
}

// --- notifications ---

type GormNotifications struct {
	db *gorm.DB
}

func NewGormNotifications(db *gorm.DB) *GormNotifications {
	return &GormNotifications{db: db}
}

func (r *GormNotifications) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *GormNotifications) ForUser(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}
