package repositories

import (
	"minishop/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	Create(item *models.Cart) error
	GetByID(id uint) (*models.Cart, error)
	GetByUser(userID uint) ([]models.Cart, error)
	UpdateQuantity(id uint, quantity int) error
	Delete(id uint) error
}
