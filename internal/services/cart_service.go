package services

import (
	"fmt"

	"minishop/internal/models"
	"minishop/internal/repositories"

	log "github.com/sirupsen/logrus"
)

// CartService handles business logic related to shopping carts.
type CartService struct {
	cartRepo    repositories.CartRepository
	userRepo    repositories.UserRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, userRepo repositories.UserRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// AddItem inserts a new cart row after verifying the referenced user and
// product exist. The store does not enforce these relations, so the check
// lives here. Duplicate (user, product) rows are allowed.
func (s *CartService) AddItem(item *models.Cart) error {
	if _, err := s.userRepo.GetByID(item.UserID); err != nil {
		return fmt.Errorf("user %d: %w", item.UserID, err)
	}
	if _, err := s.productRepo.GetByID(item.ProductID); err != nil {
		return fmt.Errorf("product %d: %w", item.ProductID, err)
	}

	if err := s.cartRepo.Create(item); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"cart_id":    item.ID,
		"user_id":    item.UserID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	}).Info("cart item added")
	return nil
}

// GetItems retrieves all cart rows for the user.
func (s *CartService) GetItems(userID uint) ([]models.Cart, error) {
	return s.cartRepo.GetByUser(userID)
}

// UpdateQuantity sets the quantity of an existing cart row.
func (s *CartService) UpdateQuantity(id uint, quantity int) error {
	return s.cartRepo.UpdateQuantity(id, quantity)
}

// RemoveItem deletes a cart row by its ID.
func (s *CartService) RemoveItem(id uint) error {
	return s.cartRepo.Delete(id)
}
