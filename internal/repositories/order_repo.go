package repositories

import (
	"minishop/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetByUser(userID uint) ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	// PlaceFromCart converts every cart row of the user into a pending
	// order and removes the cart rows, as one atomic unit of work.
	// Returns ErrEmptyCart if the user has no cart rows.
	PlaceFromCart(userID uint) ([]models.Order, error)
	UpdateStatus(id uint, status string) error
}
