package handlers

import (
	"bytes"
	"errors"
	"fmt"

	"mercado/internal/models"
	"mercado/internal/repositories"
	"mercado/internal/services"
	"mercado/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"
)

const (
	MsgProductCreated  = "Product successfully created."
	MsgProductUpdated  = "Product successfully updated."
	MsgProductNotFound = "Product not found."
	MsgInvalidBody     = "Invalid request body."
	MsgInternalError   = "An internal server error occurred."
)

var errInvalidBody = errors.New("invalid request body")

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validation.Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/product")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleCreateProduct validates the body and inserts a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input validation.ProductInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, err)
	}
	if err := h.validate.Product(&input); err != nil {
		return respondError(c, err)
	}

	product, err := newProduct("", input)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.CreateProduct(c.UserContext(), product); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": MsgProductCreated,
		"id":      product.ID,
	})
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return c.JSON(fiber.Map{
		"products": products,
	})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := h.validate.ID(utils.CopyString(c.Params("id")))
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleUpdateProduct replaces name and price of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var input validation.ProductInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, err)
	}
	id, err := h.validate.ProductUpdate(utils.CopyString(c.Params("id")), &input)
	if err != nil {
		return respondError(c, err)
	}

	product, err := newProduct(id, input)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.UpdateProduct(c.UserContext(), product); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": MsgProductUpdated,
	})
}

// HandleDeleteProduct removes a product and answers with an empty 204.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := h.validate.ID(utils.CopyString(c.Params("id")))
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// newProduct builds the stored product from validated input. A price that
// cannot be stored is still a rule failure.
func newProduct(id string, input validation.ProductInput) (*models.Product, error) {
	price, err := input.Price.Float64()
	if err != nil {
		return nil, &validation.Error{
			Field:   "price",
			Rule:    "price",
			Message: validation.MsgPriceInvalid,
		}
	}
	return &models.Product{
		ID:    id,
		Name:  input.Name,
		Price: price,
	}, nil
}

// parseBody decodes a JSON body. An empty body leaves out untouched so the
// field rules report what is missing.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(bytes.TrimSpace(c.Body())) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

// respondError maps an error to its status code. Storage errors are logged
// and answered with a generic message.
func respondError(c *fiber.Ctx, err error) error {
	var ruleErr *validation.Error
	switch {
	case errors.As(err, &ruleErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": ruleErr.Message,
		})
	case errors.Is(err, errInvalidBody):
		zerolog.Ctx(c.UserContext()).Debug().Err(err).Msg("rejected request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": MsgInvalidBody,
		})
	case errors.Is(err, repositories.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": MsgProductNotFound,
		})
	default:
		zerolog.Ctx(c.UserContext()).Error().Err(err).Msg("product request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": MsgInternalError,
		})
	}
}

// ErrorHandler renders errors that escape the handlers: fiber errors keep
// their status, everything else becomes a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"message": fiberErr.Message,
		})
	}
	zerolog.Ctx(c.UserContext()).Error().Err(err).Msg("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": MsgInternalError,
	})
}
