package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/templhub/internal/models"
	"github.com/example/templhub/internal/store"
	"github.com/example/templhub/internal/utils"
)

// TemplateHandler manages the template catalog.
type TemplateHandler struct {
	templates store.TemplateStore
}

// NewTemplateHandler constructs TemplateHandler.
func NewTemplateHandler(templates store.TemplateStore) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// ListTemplates returns paginated active templates, optionally by category.
func (h *TemplateHandler) ListTemplates(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	templates, total, err := h.templates.ListActive(c.Context(), c.Query("category"), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    templates,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetTemplate returns a single active template by slug.
func (h *TemplateHandler) GetTemplate(c *fiber.Ctx) error {
	template, err := h.templates.FindActiveBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	if template == nil {
		return fiber.NewError(fiber.StatusNotFound, "template not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": template})
}

// CreateTemplate persists a new template.
func (h *TemplateHandler) CreateTemplate(c *fiber.Ctx) error {
	var payload models.Template
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Name == "" || payload.Slug == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name and slug are required")
	}

	if err := h.templates.Create(c.Context(), &payload); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateTemplate updates an existing template.
func (h *TemplateHandler) UpdateTemplate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	template, err := h.templates.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	if template == nil {
		return fiber.NewError(fiber.StatusNotFound, "template not found")
	}

	var payload models.Template
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.BaseModel = template.BaseModel
	if err := h.templates.Update(c.Context(), &payload); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": payload})
}

// DeleteTemplate removes a template by ID.
func (h *TemplateHandler) DeleteTemplate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.templates.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
