package services

import (
	"errors"
	"fmt"

	"minishop/internal/models"
	"minishop/internal/repositories"
	"minishop/pkg/rabbitmq"

	log "github.com/sirupsen/logrus"
)

// ErrInvalidStatus is returned when an order status update names a value
// outside the known enum.
var ErrInvalidStatus = errors.New("invalid order status")

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	mqClient  *rabbitmq.Client // nil disables event publishing
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		mqClient:  mqClient,
	}
}

// PlaceOrder converts every cart row of the user into a pending order and
// drains the cart atomically. An empty cart yields
// repositories.ErrEmptyCart. Event publishing is best effort; the order
// placement itself is not rolled back when the broker is unavailable.
func (s *OrderService) PlaceOrder(userID uint) ([]models.Order, error) {
	orders, err := s.orderRepo.PlaceFromCart(userID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"orders":  len(orders),
	}).Info("order placed")

	if s.mqClient != nil {
		ids := make([]uint, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.ID)
		}
		event := rabbitmq.OrderPlacedEvent{UserID: userID, OrderIDs: ids}
		if err := s.mqClient.PublishOrderPlaced(event); err != nil {
			log.WithField("user_id", userID).WithError(err).
				Warn("failed to publish order placed event")
		}
	}

	return orders, nil
}

// ListOrders retrieves all orders for the user, each with its product.
func (s *OrderService) ListOrders(userID uint) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// UpdateOrderStatus updates the status of an existing order. The status
// is validated against the enum before the store is touched.
func (s *OrderService) UpdateOrderStatus(id uint, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"order_id": id,
		"status":   status,
	}).Info("order status updated")
	return nil
}
