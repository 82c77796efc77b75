package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"leadhub/models"
	"leadhub/store"
	"leadhub/utils"
)

// ContentController serves the static sales content: broker affiliate
// links and call/chat scripts.
type ContentController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewContentController(st *store.Store, logger *log.Logger) *ContentController {
	return &ContentController{Store: st, Logger: logger}
}

func (cc *ContentController) CreateBrokerLink(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name" validate:"required,max=100"`
		URL         string `json:"url" validate:"required,url"`
		Description string `json:"description"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	link := models.BrokerLink{
		Name:        input.Name,
		URL:         input.URL,
		Description: input.Description,
	}

	id, err := cc.Store.BrokerLinks.Create(c.Context(), &link)
	if err != nil {
		return storeError(c, "Failed to create broker link", err)
	}

	LogActivity(c, cc.Store, "broker_link_created", "broker_link", &id, link.Name)
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(link))
}

func (cc *ContentController) GetBrokerLinks(c *fiber.Ctx) error {
	links, err := cc.Store.BrokerLinks.List(c.Context(), c.Query("active_only") == "true")
	if err != nil {
		return storeError(c, "Failed to list broker links", err)
	}
	return c.JSON(utils.SuccessResponse(links))
}

func (cc *ContentController) UpdateBrokerLink(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))

	var patch store.BrokerLinkPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := cc.Store.BrokerLinks.Update(c.Context(), id, patch); err != nil {
		return storeError(c, "Failed to update broker link", err)
	}

	LogActivity(c, cc.Store, "broker_link_updated", "broker_link", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}

func (cc *ContentController) DeleteBrokerLink(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	if err := cc.Store.BrokerLinks.Delete(c.Context(), id); err != nil {
		return storeError(c, "Failed to delete broker link", err)
	}

	LogActivity(c, cc.Store, "broker_link_deleted", "broker_link", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}

func (cc *ContentController) CreateScript(c *fiber.Ctx) error {
	var input struct {
		Title      string `json:"title" validate:"required,max=200"`
		Content    string `json:"content"`
		ScriptType string `json:"script_type" validate:"omitempty,max=50"`
		Category   string `json:"category" validate:"omitempty,max=50"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	script := models.Script{
		Title:      input.Title,
		Content:    input.Content,
		ScriptType: input.ScriptType,
		Category:   input.Category,
		CreatedBy:  currentUserID(c),
	}

	id, err := cc.Store.Scripts.Create(c.Context(), &script)
	if err != nil {
		return storeError(c, "Failed to create script", err)
	}

	LogActivity(c, cc.Store, "script_created", "script", &id, script.Title)
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(script))
}

func (cc *ContentController) GetScripts(c *fiber.Ctx) error {
	scripts, err := cc.Store.Scripts.List(c.Context(),
		c.Query("category"), c.Query("active_only") == "true")
	if err != nil {
		return storeError(c, "Failed to list scripts", err)
	}
	return c.JSON(utils.SuccessResponse(scripts))
}

func (cc *ContentController) GetScript(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	script, err := cc.Store.Scripts.Get(c.Context(), id)
	if err != nil {
		return storeError(c, "Failed to get script", err)
	}
	if script == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Script not found", nil)
	}
	return c.JSON(utils.SuccessResponse(script))
}

func (cc *ContentController) UpdateScript(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))

	var patch store.ScriptPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := cc.Store.Scripts.Update(c.Context(), id, patch); err != nil {
		return storeError(c, "Failed to update script", err)
	}

	LogActivity(c, cc.Store, "script_updated", "script", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}

func (cc *ContentController) DeleteScript(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	if err := cc.Store.Scripts.Delete(c.Context(), id); err != nil {
		return storeError(c, "Failed to delete script", err)
	}

	LogActivity(c, cc.Store, "script_deleted", "script", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}
