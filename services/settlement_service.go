package services

import (
	"errors"
	"fmt"

	"salonqueue-backend/models"
	"salonqueue-backend/repository"

	"github.com/rs/zerolog"
)

// SettlementService consumes inventory and credits loyalty points once a
// booking's services are done. It runs after the completed status has
// committed, so every failure here is logged and carried on: the salon
// floor does not stop because a stock counter is off.
type SettlementService struct {
	catalog  repository.ServiceRepository
	products repository.ProductRepository
	users    repository.UserRepository
	log      zerolog.Logger
}

func NewSettlementService(
	catalog repository.ServiceRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	log zerolog.Logger,
) *SettlementService {
	return &SettlementService{
		catalog:  catalog,
		products: products,
		users:    users,
		log:      log,
	}
}

// SettleCompletion reduces stock for every product the booking's
// services consumed (per-unit usage times line quantity) and credits the
// customer's loyalty points. Returns the points credited.
func (s *SettlementService) SettleCompletion(booking *models.Booking) (int, error) {
	for _, line := range booking.Items {
		links, err := s.catalog.ConsumedProducts(line.ServiceID)
		if err != nil {
			s.log.Error().Err(err).
				Str("service_id", line.ServiceID.String()).
				Msg("failed to load consumed products")
			continue
		}
		for _, link := range links {
			quantity := link.QuantityUsed * line.Quantity
			if err := s.products.ConsumeStock(link.ProductID, quantity); err != nil {
				if errors.Is(err, models.ErrInsufficientStock) {
					s.log.Warn().
						Str("product_id", link.ProductID.String()).
						Int("quantity", quantity).
						Msg("stock short during settlement; flagged for restock")
					continue
				}
				s.log.Error().Err(err).
					Str("product_id", link.ProductID.String()).
					Msg("stock consumption failed")
			}
		}
	}

	points := 0
	for _, line := range booking.Items {
		points += line.LoyaltyPoints * line.Quantity
	}
	if points > 0 {
		if err := s.users.CreditLoyalty(booking.CustomerID, points); err != nil {
			return points, fmt.Errorf("crediting %d loyalty points: %w", points, err)
		}
	}
	return points, nil
}
