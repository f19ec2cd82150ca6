package handlers

import (
	"errors"
	"log"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ProviderHandler handles HTTP requests for providers.
type ProviderHandler struct {
	service  *services.ProviderService
	validate *validator.Validate
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(service *services.ProviderService) *ProviderHandler {
	return &ProviderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the provider routes with the Fiber app.
func (h *ProviderHandler) RegisterRoutes(router fiber.Router) {
	providerRoutes := router.Group("/providers")
	providerRoutes.Get("/", h.HandleListProviders)
	providerRoutes.Post("/", h.HandleCreateProvider)
	providerRoutes.Get("/:id", h.HandleGetProviderByID)
	providerRoutes.Put("/:id", h.HandleUpdateProvider)
	providerRoutes.Patch("/:id", h.HandlePatchProvider)
	providerRoutes.Delete("/:id", h.HandleDeleteProvider)
}

// ProviderRequest is the create/update (full replace) request body. The
// write path requires address even though the schema keeps it nullable.
type ProviderRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Address     string `json:"address" validate:"required,max=255"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

func (r ProviderRequest) toModel() models.Provider {
	return models.Provider{
		Name:        r.Name,
		Address:     r.Address,
		Phone:       r.Phone,
		Description: r.Description,
	}
}

// ProviderPatchRequest is the partial-update request body.
type ProviderPatchRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	Phone       *string `json:"phone" validate:"omitempty,max=30"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// HandleListProviders retrieves a page of providers.
func (h *ProviderHandler) HandleListProviders(c *fiber.Ctx) error {
	params := listParamsFromQuery(c)

	providers, totalPages, err := h.service.ListProviders(params)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidField) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Printf("Error listing providers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error fetching providers",
		})
	}

	return c.JSON(fiber.Map{
		"providers":  providers,
		"totalPages": totalPages,
	})
}

// HandleGetProviderByID retrieves a single provider by its ID.
func (h *ProviderHandler) HandleGetProviderByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider ID",
		})
	}

	provider, err := h.service.GetProviderByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProviderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Provider not found",
			})
		}
		log.Printf("Error getting provider %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error fetching provider",
		})
	}
	return c.JSON(provider)
}

// HandleCreateProvider creates a new provider.
func (h *ProviderHandler) HandleCreateProvider(c *fiber.Ctx) error {
	var req ProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Name and address are required",
			"fields": validationMessages(err),
		})
	}

	provider := req.toModel()
	if err := h.service.CreateProvider(&provider); err != nil {
		log.Printf("Error creating provider: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error creating provider",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(provider)
}

// HandleUpdateProvider fully replaces an existing provider's fields.
func (h *ProviderHandler) HandleUpdateProvider(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider ID",
		})
	}

	var req ProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Name and address are required",
			"fields": validationMessages(err),
		})
	}

	provider := req.toModel()
	provider.ID = id
	updated, err := h.service.UpdateProvider(&provider)
	if err != nil {
		if errors.Is(err, repositories.ErrProviderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Provider not found",
			})
		}
		log.Printf("Error updating provider %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error updating provider",
		})
	}
	return c.JSON(updated)
}

// HandlePatchProvider applies a partial update to an existing provider.
func (h *ProviderHandler) HandlePatchProvider(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider ID",
		})
	}

	var req ProviderPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Invalid field values",
			"fields": validationMessages(err),
		})
	}

	existing, err := h.service.GetProviderByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProviderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Provider not found",
			})
		}
		log.Printf("Error loading provider %s for patch: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error updating provider",
		})
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Address != nil {
		existing.Address = *req.Address
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}

	updated, err := h.service.UpdateProvider(existing)
	if err != nil {
		log.Printf("Error patching provider %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error updating provider",
		})
	}
	return c.JSON(updated)
}

// HandleDeleteProvider deletes a provider by its ID. Products referencing it
// are left untouched.
func (h *ProviderHandler) HandleDeleteProvider(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider ID",
		})
	}

	if err := h.service.DeleteProvider(id); err != nil {
		if errors.Is(err, repositories.ErrProviderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Provider not found",
			})
		}
		log.Printf("Error deleting provider %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error deleting provider",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Provider deleted successfully",
	})
}
