package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"leadhub/store"
	"leadhub/utils"
)

type SettingController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewSettingController(st *store.Store, logger *log.Logger) *SettingController {
	return &SettingController{Store: st, Logger: logger}
}

// GetSettings lists settings, optionally by key prefix
func (sc *SettingController) GetSettings(c *fiber.Ctx) error {
	settings, err := sc.Store.Settings.List(c.Context(), c.Query("prefix"))
	if err != nil {
		return storeError(c, "Failed to list settings", err)
	}
	return c.JSON(utils.SuccessResponse(settings))
}

// GetSetting returns one setting by key
func (sc *SettingController) GetSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	setting, err := sc.Store.Settings.Get(c.Context(), key)
	if err != nil {
		return storeError(c, "Failed to get setting", err)
	}
	if setting == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Setting not found", nil)
	}
	return c.JSON(utils.SuccessResponse(setting))
}

// SetSetting upserts one key/value pair
func (sc *SettingController) SetSetting(c *fiber.Ctx) error {
	var input struct {
		Key         string `json:"key" validate:"required,max=100"`
		Value       string `json:"value"`
		Description string `json:"description"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if err := sc.Store.Settings.Set(c.Context(), input.Key, input.Value, input.Description); err != nil {
		return storeError(c, "Failed to save setting", err)
	}

	LogActivity(c, sc.Store, "setting_saved", "setting", nil, input.Key)
	return c.JSON(utils.SuccessResponse(fiber.Map{"key": input.Key}))
}

// TriggerBackup runs a best-effort snapshot of the store and returns
// the created artifact's path
func (sc *SettingController) TriggerBackup(c *fiber.Ctx) error {
	path, err := sc.Store.Backup(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Backup failed", err)
	}

	sc.Logger.Printf("✅ backup written to %s", path)
	LogActivity(c, sc.Store, "backup_created", "system", nil, path)
	return c.JSON(utils.SuccessResponse(fiber.Map{"path": path}))
}
