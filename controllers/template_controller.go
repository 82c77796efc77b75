package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"leadhub/models"
	"leadhub/store"
	"leadhub/utils"
)

type TemplateController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewTemplateController(st *store.Store, logger *log.Logger) *TemplateController {
	return &TemplateController{Store: st, Logger: logger}
}

// CreateTemplate creates a contact template
func (tc *TemplateController) CreateTemplate(c *fiber.Ctx) error {
	var input struct {
		Name         string `json:"name" validate:"required,max=100"`
		TemplateType string `json:"template_type" validate:"omitempty,oneof=email telegram whatsapp"`
		Subject      string `json:"subject" validate:"omitempty,max=200"`
		Body         string `json:"body" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	tmpl := models.ContactTemplate{
		Name:         input.Name,
		TemplateType: input.TemplateType,
		Subject:      input.Subject,
		Body:         input.Body,
		CreatedBy:    currentUserID(c),
	}

	id, err := tc.Store.Templates.Create(c.Context(), &tmpl)
	if err != nil {
		return storeError(c, "Failed to create template", err)
	}

	LogActivity(c, tc.Store, "template_created", "template", &id, tmpl.Name)
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(tmpl))
}

// GetTemplates lists templates, optionally by type
func (tc *TemplateController) GetTemplates(c *fiber.Ctx) error {
	templates, err := tc.Store.Templates.List(c.Context(),
		c.Query("type"), c.Query("active_only") == "true")
	if err != nil {
		return storeError(c, "Failed to list templates", err)
	}
	return c.JSON(utils.SuccessResponse(templates))
}

// GetTemplate returns one template
func (tc *TemplateController) GetTemplate(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	tmpl, err := tc.Store.Templates.Get(c.Context(), id)
	if err != nil {
		return storeError(c, "Failed to get template", err)
	}
	if tmpl == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Template not found", nil)
	}
	return c.JSON(utils.SuccessResponse(tmpl))
}

// UpdateTemplate applies a partial update
func (tc *TemplateController) UpdateTemplate(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))

	var patch store.TemplatePatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := tc.Store.Templates.Update(c.Context(), id, patch); err != nil {
		return storeError(c, "Failed to update template", err)
	}

	LogActivity(c, tc.Store, "template_updated", "template", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}

// DeleteTemplate removes a template
func (tc *TemplateController) DeleteTemplate(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	if err := tc.Store.Templates.Delete(c.Context(), id); err != nil {
		return storeError(c, "Failed to delete template", err)
	}

	LogActivity(c, tc.Store, "template_deleted", "template", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}

// PreviewTemplate renders the template body against a lead without
// sending anything
func (tc *TemplateController) PreviewTemplate(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	tmpl, err := tc.Store.Templates.Get(c.Context(), id)
	if err != nil {
		return storeError(c, "Failed to get template", err)
	}
	if tmpl == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Template not found", nil)
	}

	leadID := queryID(c, "lead_id")
	var lead *models.Lead
	if leadID != nil {
		lead, err = storeFor(c, tc.Store).Leads.Get(c.Context(), *leadID)
		if err != nil {
			return storeError(c, "Failed to get lead", err)
		}
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"subject": utils.RenderTemplate(tmpl.Subject, lead),
		"body":    utils.RenderTemplate(tmpl.Body, lead),
	}))
}

// SendTestTemplate renders the template against a lead and delivers
// it through the channel matching the template type. WhatsApp has no
// sender wired; those templates can only be previewed.
func (tc *TemplateController) SendTestTemplate(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))

	var input struct {
		LeadID *int64 `json:"lead_id"`
		To     string `json:"to" validate:"omitempty,email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	tmpl, err := tc.Store.Templates.Get(c.Context(), id)
	if err != nil {
		return storeError(c, "Failed to get template", err)
	}
	if tmpl == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Template not found", nil)
	}

	var lead *models.Lead
	if input.LeadID != nil {
		lead, err = tc.Store.Leads.Get(c.Context(), *input.LeadID)
		if err != nil {
			return storeError(c, "Failed to get lead", err)
		}
	}

	subject := utils.RenderTemplate(tmpl.Subject, lead)
	body := utils.RenderTemplate(tmpl.Body, lead)

	switch tmpl.TemplateType {
	case models.TemplateTypeEmail:
		to := input.To
		if to == "" && lead != nil {
			to = lead.Email
		}
		if to == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "No recipient address", nil)
		}
		if err := utils.SendEmail(to, subject, body); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadGateway, "Failed to send test email", err)
		}
	case models.TemplateTypeTelegram:
		if err := utils.SendTelegramMessage(body); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadGateway, "Failed to send test message", err)
		}
	default:
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Template type has no test sender", nil)
	}

	LogActivity(c, tc.Store, "template_test_sent", "template", &id, tmpl.TemplateType)
	return c.JSON(utils.SuccessResponse(fiber.Map{"message": "Test sent"}))
}
