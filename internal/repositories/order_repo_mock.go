package repositories

import (
	"sync"

	"minishop/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It shares a MockCartRepository so PlaceFromCart can drain the cart the
// way the GORM implementation does.
type MockOrderRepository struct {
	orders map[uint]models.Order
	carts  *MockCartRepository
	nextID uint
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(carts *MockCartRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[uint]models.Order),
		carts:  carts,
		nextID: 1,
	}
}

// GetByUser returns all orders belonging to the user.
func (r *MockOrderRepository) GetByUser(userID uint) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

// PlaceFromCart converts the user's cart rows into pending orders and
// drains the cart.
func (r *MockOrderRepository) PlaceFromCart(userID uint) ([]models.Order, error) {
	items, err := r.carts.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	r.mu.Lock()
	created := make([]models.Order, 0, len(items))
	for _, item := range items {
		order := models.Order{
			ID:        r.nextID,
			UserID:    item.UserID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Status:    models.OrderStatusPending,
		}
		r.nextID++
		r.orders[order.ID] = order
		created = append(created, order)
	}
	r.mu.Unlock()

	r.carts.deleteByUser(userID)
	return created, nil
}

// UpdateStatus sets the status of an existing order.
func (r *MockOrderRepository) UpdateStatus(id uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	order.Status = status
	r.orders[id] = order
	return nil
}
