package repositories

import (
	"errors"
	"fmt"

	"minishop/internal/models"

	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// Create inserts a new cart row. Every call inserts a fresh row; existing
// rows for the same (user, product) pair are left untouched.
func (r *GORMCartRepository) Create(item *models.Cart) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// GetByID retrieves a single cart row by its ID.
func (r *GORMCartRepository) GetByID(id uint) (*models.Cart, error) {
	var item models.Cart
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart item by ID %d: %w", id, err)
	}
	return &item, nil
}

// GetByUser retrieves all cart rows belonging to the user.
func (r *GORMCartRepository) GetByUser(userID uint) ([]models.Cart, error) {
	var items []models.Cart
	if err := r.db.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart for user %d: %w", userID, err)
	}
	return items, nil
}

// UpdateQuantity sets the quantity of an existing cart row.
func (r *GORMCartRepository) UpdateQuantity(id uint, quantity int) error {
	res := r.db.Model(&models.Cart{}).Where("id = ?", id).Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a cart row by its ID.
func (r *GORMCartRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Cart{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
