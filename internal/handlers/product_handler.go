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

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleGetProducts)
	router.Post("/products", h.HandleCreateProduct)
	router.Get("/products/:id", h.HandleGetProduct)
	router.Put("/products/:id", h.HandleUpdateProduct)
	router.Delete("/products/:id", h.HandleDeleteProduct)
}

// ProductRequest represents the body for product create/update.
type ProductRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=100"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

// HandleGetProducts returns the full catalog.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.WithError(err).Error("failed to list products")
		return errorResponse(c, fiber.StatusInternalServerError, "Could not retrieve products")
	}
	return c.JSON(products)
}

// HandleCreateProduct inserts a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
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

	product := models.Product{Name: req.Name, Price: req.Price}
	if err := h.service.CreateProduct(&product); err != nil {
		log.WithError(err).Error("failed to create product")
		return errorResponse(c, fiber.StatusInternalServerError, "Could not create product")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"message":    "Product created",
		"product_id": product.ID,
	})
}

// HandleGetProduct returns a single product by id.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Product not found")
		}
		log.WithField("product_id", id).WithError(err).Error("failed to get product")
		return errorResponse(c, fiber.StatusInternalServerError, "Could not retrieve product")
	}

	return c.JSON(product)
}

// HandleUpdateProduct replaces a product's name and price.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	var req ProductRequest
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

	product := models.Product{ID: id, Name: req.Name, Price: req.Price}
	if err := h.service.UpdateProduct(&product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Product not found")
		}
		log.WithField("product_id", id).WithError(err).Error("failed to update product")
		return errorResponse(c, fiber.StatusInternalServerError, "Could not update product")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Product updated",
		"product_id": id,
	})
}

// HandleDeleteProduct removes a product by id.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteProduct(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Product not found")
		}
		log.WithField("product_id", id).WithError(err).Error("failed to delete product")
		return errorResponse(c, fiber.StatusInternalServerError, "Could not delete product")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted",
	})
}
