package handlers

import (
	"errors"

	"minishop/internal/models"
	"minishop/internal/repositories"
	"minishop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// CartHandler handles HTTP requests for shopping carts.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/cart", h.HandleAddToCart)
	router.Get("/cart", h.HandleGetCart)
	router.Put("/cart/:id", h.HandleUpdateCartItem)
	router.Delete("/cart/:id", h.HandleDeleteCartItem)
}

// AddToCartRequest represents the body for adding a cart item.
type AddToCartRequest struct {
	UserID    uint `json:"user_id" validate:"required"`
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// CartItemResponse is the wire shape of a cart row in list responses.
type CartItemResponse struct {
	ID        uint `json:"id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// HandleAddToCart inserts a new cart row for the user.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	item := models.Cart{UserID: req.UserID, ProductID: req.ProductID, Quantity: req.Quantity}
	if err := h.service.AddItem(&item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, err.Error())
		}
		log.WithError(err).Error("failed to add cart item")
		return errorResponse(c, fiber.StatusInternalServerError, "Could not add item to cart")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Item added to cart",
		"cart_id": item.ID,
	})
}

// HandleGetCart lists all cart rows for the user named by ?user_id=.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID := c.QueryInt("user_id")
	if userID <= 0 {
		return errorResponse(c, fiber.StatusBadRequest, "user_id query parameter is required")
	}

	items, err := h.service.GetItems(uint(userID))
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("failed to get cart")
		return errorResponse(c, fiber.StatusInternalServerError, "Could not retrieve cart")
	}

	resp := make([]CartItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return c.JSON(resp)
}

// HandleUpdateCartItem sets the quantity of a cart row. The quantity is
// read from the JSON body, falling back to the ?quantity= query parameter
// for callers of the older form.
func (h *CartHandler) HandleUpdateCartItem(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	quantity := body.Quantity
	if quantity == 0 {
		quantity = c.QueryInt("quantity")
	}
	if quantity <= 0 {
		return errorResponse(c, fiber.StatusBadRequest, "quantity must be a positive integer")
	}

	if err := h.service.UpdateQuantity(id, quantity); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Cart item not found")
		}
		log.WithField("cart_id", id).WithError(err).Error("failed to update cart item")
		return errorResponse(c, fiber.StatusInternalServerError, "Could not update cart item")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cart item updated",
		"cart_id": id,
	})
}

// HandleDeleteCartItem removes a cart row by id.
func (h *CartHandler) HandleDeleteCartItem(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.RemoveItem(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Cart item not found")
		}
		log.WithField("cart_id", id).WithError(err).Error("failed to delete cart item")
		return errorResponse(c, fiber.StatusInternalServerError, "Could not delete cart item")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cart item deleted",
	})
}
