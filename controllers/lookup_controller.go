package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"leadhub/store"
	"leadhub/utils"
)

type LookupController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewLookupController(st *store.Store, logger *log.Logger) *LookupController {
	return &LookupController{Store: st, Logger: logger}
}

// GetLookup returns the rows of one reference table in insertion
// order. The table name comes from the path and is validated against
// the known lookup tables.
func (lc *LookupController) GetLookup(c *fiber.Ctx) error {
	table := c.Params("table")
	rows, err := lc.Store.Lookups.List(c.Context(), table)
	if err != nil {
		return storeError(c, "Failed to list lookup values", err)
	}
	return c.JSON(utils.SuccessResponse(rows))
}
