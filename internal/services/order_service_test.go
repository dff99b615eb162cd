package services_test

import (
	"testing"

	"minishop/internal/models"
	"minishop/internal/repositories"
	"minishop/internal/services"

	"github.com/stretchr/testify/assert"
)

// orderFixture wires an OrderService over in-memory repositories sharing
// one cart store. The nil RabbitMQ client disables event publishing.
func orderFixture() (*services.OrderService, *repositories.MockCartRepository) {
	cartRepo := repositories.NewMockCartRepository()
	orderRepo := repositories.NewMockOrderRepository(cartRepo)
	return services.NewOrderService(orderRepo, nil), cartRepo
}

func TestOrderService_PlaceOrder(t *testing.T) {
	service, cartRepo := orderFixture()

	assert.NoError(t, cartRepo.Create(&models.Cart{UserID: 1, ProductID: 1, Quantity: 2}))
	assert.NoError(t, cartRepo.Create(&models.Cart{UserID: 1, ProductID: 2, Quantity: 1}))
	// Another user's cart must survive the placement
	assert.NoError(t, cartRepo.Create(&models.Cart{UserID: 2, ProductID: 1, Quantity: 4}))

	orders, err := service.PlaceOrder(1)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, models.OrderStatusPending, o.Status)
		assert.Equal(t, uint(1), o.UserID)
	}

	// The user's cart is drained
	items, err := cartRepo.GetByUser(1)
	assert.NoError(t, err)
	assert.Empty(t, items)

	// The other user's cart is untouched
	items, err = cartRepo.GetByUser(2)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestOrderService_PlaceOrderEmptyCart(t *testing.T) {
	service, _ := orderFixture()

	orders, err := service.PlaceOrder(1)
	assert.ErrorIs(t, err, repositories.ErrEmptyCart)
	assert.Nil(t, orders)

	// Nothing was created
	list, err := service.ListOrders(1)
	assert.NoError(t, err)
	assert.Empty(t, list)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	service, cartRepo := orderFixture()

	assert.NoError(t, cartRepo.Create(&models.Cart{UserID: 1, ProductID: 1, Quantity: 1}))
	orders, err := service.PlaceOrder(1)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	orderID := orders[0].ID

	// A value outside the enum is rejected before the store is touched
	err = service.UpdateOrderStatus(orderID, "shipped")
	assert.ErrorIs(t, err, services.ErrInvalidStatus)

	// A valid value persists and is visible on fetch
	assert.NoError(t, service.UpdateOrderStatus(orderID, models.OrderStatusCompleted))
	order, err := service.GetOrderByID(orderID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)

	// Unknown order
	err = service.UpdateOrderStatus(999, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderService_GetOrderByID_NotFound(t *testing.T) {
	service, _ := orderFixture()

	_, err := service.GetOrderByID(1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "completed", "cancelled"} {
		assert.True(t, models.ValidOrderStatus(s), s)
	}
	for _, s := range []string{"", "shipped", "PENDING", "done"} {
		assert.False(t, models.ValidOrderStatus(s), s)
	}
}
