package repositories

import (
	"errors"
	"fmt"

	"minishop/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetByUser retrieves all orders for the user, each with its product loaded.
func (r *GORMOrderRepository) GetByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Product").Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %d: %w", userID, err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID, with its product loaded.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Product").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// PlaceFromCart converts the user's cart rows into pending orders and
// drains the cart, all inside one transaction. Either every cart row
// becomes an order and the cart ends up empty, or nothing changes.
func (r *GORMOrderRepository) PlaceFromCart(userID uint) ([]models.Order, error) {
	var created []models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var items []models.Cart
		if err := tx.Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return fmt.Errorf("failed to read cart for user %d: %w", userID, err)
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}
		for _, item := range items {
			order := models.Order{
				UserID:    item.UserID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Status:    models.OrderStatusPending,
			}
			if err := tx.Create(&order).Error; err != nil {
				return fmt.Errorf("failed to create order from cart item %d: %w", item.ID, err)
			}
			created = append(created, order)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Cart{}).Error; err != nil {
			return fmt.Errorf("failed to drain cart for user %d: %w", userID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateStatus sets the status of an existing order.
func (r *GORMOrderRepository) UpdateStatus(id uint, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
