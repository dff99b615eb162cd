package repositories

import (
	"sync"

	"minishop/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	items  map[uint]models.Cart
	nextID uint
	mu     sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		items:  make(map[uint]models.Cart),
		nextID: 1,
	}
}

// Create adds a new cart row, assigning the next sequential ID.
func (r *MockCartRepository) Create(item *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == 0 {
		item.ID = r.nextID
		r.nextID++
	}
	r.items[item.ID] = *item
	return nil
}

// GetByID returns a cart row by its ID.
func (r *MockCartRepository) GetByID(id uint) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

// GetByUser returns all cart rows belonging to the user.
func (r *MockCartRepository) GetByUser(userID uint) ([]models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Cart, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

// UpdateQuantity sets the quantity of an existing cart row.
func (r *MockCartRepository) UpdateQuantity(id uint, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	item.Quantity = quantity
	r.items[id] = item
	return nil
}

// Delete removes a cart row by its ID.
func (r *MockCartRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// deleteByUser removes every cart row belonging to the user. Used by the
// mock order repository's PlaceFromCart.
func (r *MockCartRepository) deleteByUser(userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.UserID == userID {
			delete(r.items, id)
		}
	}
}
