package services_test

import (
	"testing"

	"minishop/internal/models"
	"minishop/internal/repositories"
	"minishop/internal/services"

	"github.com/stretchr/testify/assert"
)

// cartFixture wires a CartService over the in-memory repositories with
// one user and one product already present.
func cartFixture(t *testing.T) (*services.CartService, *repositories.MockCartRepository) {
	t.Helper()

	userRepo := repositories.NewMockUserRepository()
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()

	assert.NoError(t, userRepo.Create(&models.User{Username: "alice", Email: "a@x.com", Password: "pw1"}))
	assert.NoError(t, productRepo.Create(&models.Product{Name: "Laptop", Price: 1200.00}))

	return services.NewCartService(cartRepo, userRepo, productRepo), cartRepo
}

func TestCartService_AddItem(t *testing.T) {
	service, _ := cartFixture(t)

	item := &models.Cart{UserID: 1, ProductID: 1, Quantity: 2}
	err := service.AddItem(item)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), item.ID)

	// Unknown user is rejected before any insert
	err = service.AddItem(&models.Cart{UserID: 99, ProductID: 1, Quantity: 1})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Unknown product likewise
	err = service.AddItem(&models.Cart{UserID: 1, ProductID: 99, Quantity: 1})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCartService_AddItemDoesNotMerge(t *testing.T) {
	service, _ := cartFixture(t)

	// Two adds for the same (user, product) pair stay two rows
	assert.NoError(t, service.AddItem(&models.Cart{UserID: 1, ProductID: 1, Quantity: 1}))
	assert.NoError(t, service.AddItem(&models.Cart{UserID: 1, ProductID: 1, Quantity: 3}))

	items, err := service.GetItems(1)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	service, _ := cartFixture(t)

	item := &models.Cart{UserID: 1, ProductID: 1, Quantity: 1}
	assert.NoError(t, service.AddItem(item))

	assert.NoError(t, service.UpdateQuantity(item.ID, 5))

	items, err := service.GetItems(1)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)

	assert.ErrorIs(t, service.UpdateQuantity(99, 5), repositories.ErrNotFound)
}

func TestCartService_RemoveItem(t *testing.T) {
	service, _ := cartFixture(t)

	item := &models.Cart{UserID: 1, ProductID: 1, Quantity: 1}
	assert.NoError(t, service.AddItem(item))

	assert.NoError(t, service.RemoveItem(item.ID))

	items, err := service.GetItems(1)
	assert.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, service.RemoveItem(item.ID), repositories.ErrNotFound)
}
