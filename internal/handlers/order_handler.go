package handlers

import (
	"errors"

	"minishop/internal/repositories"
	"minishop/internal/services"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/order", h.HandlePlaceOrder)
	router.Get("/order", h.HandleGetOrders)
	router.Get("/orders/:id", h.HandleGetOrderDetail)
	router.Put("/orders/:id/status", h.HandleUpdateOrderStatus)
}

// PlaceOrderRequest represents the body for placing an order.
type PlaceOrderRequest struct {
	UserID uint `json:"user_id"`
}

// HandlePlaceOrder converts the user's cart into orders.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.UserID == 0 {
		return errorResponse(c, fiber.StatusBadRequest, "user_id is required")
	}

	if _, err := h.service.PlaceOrder(req.UserID); err != nil {
		if errors.Is(err, repositories.ErrEmptyCart) {
			return errorResponse(c, fiber.StatusBadRequest, "Cart is empty")
		}
		log.WithField("user_id", req.UserID).WithError(err).Error("failed to place order")
		return errorResponse(c, fiber.StatusInternalServerError, "Could not place order")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order placed",
	})
}

// HandleGetOrders lists all orders for the user named by ?user_id=, each
// with its product embedded.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	userID := c.QueryInt("user_id")
	if userID <= 0 {
		return errorResponse(c, fiber.StatusBadRequest, "user_id query parameter is required")
	}

	orders, err := h.service.ListOrders(uint(userID))
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("failed to list orders")
		return errorResponse(c, fiber.StatusInternalServerError, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderDetail returns a single order by id.
func (h *OrderHandler) HandleGetOrderDetail(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	order, err := h.service.GetOrderByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Order not found")
		}
		log.WithField("order_id", id).WithError(err).Error("failed to get order")
		return errorResponse(c, fiber.StatusInternalServerError, "Could not retrieve order")
	}

	return c.JSON(order)
}

// HandleUpdateOrderStatus sets an order's status. The status comes from
// the JSON body, falling back to the ?status= query parameter.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	var body struct {
		Status string `json:"status"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	status := body.Status
	if status == "" {
		status = c.Query("status")
	}
	if status == "" {
		return errorResponse(c, fiber.StatusBadRequest, "status is required")
	}

	if err := h.service.UpdateOrderStatus(id, status); err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return errorResponse(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Order not found")
		}
		log.WithField("order_id", id).WithError(err).Error("failed to update order status")
		return errorResponse(c, fiber.StatusInternalServerError, "Could not update order status")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Order status updated",
		"order_id": id,
	})
}
