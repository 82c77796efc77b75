package controller

import (
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"leadhub/models"
	"leadhub/store"
	"leadhub/utils"
)

type LeadController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewLeadController(st *store.Store, logger *log.Logger) *LeadController {
	return &LeadController{Store: st, Logger: logger}
}

// CreateLead creates a new lead with validation
func (lc *LeadController) CreateLead(c *fiber.Ctx) error {
	var input struct {
		Name              string     `json:"name" validate:"omitempty,max=200"`
		FirstName         string     `json:"first_name" validate:"omitempty,max=100"`
		LastName          string     `json:"last_name" validate:"omitempty,max=100"`
		Email             string     `json:"email" validate:"omitempty,email"`
		Phone             string     `json:"phone" validate:"omitempty,max=50"`
		Company           string     `json:"company" validate:"omitempty,max=200"`
		Position          string     `json:"position" validate:"omitempty,max=200"`
		StateID           *int64     `json:"state_id"`
		CategoryID        *int64     `json:"category_id"`
		PriorityID        *int64     `json:"priority_id"`
		SourceID          *int64     `json:"source_id"`
		AssignedTo        *int64     `json:"assigned_to"`
		Budget            *float64   `json:"budget"`
		ExpectedCloseDate *time.Time `json:"expected_close_date"`
		Notes             string     `json:"notes"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	lead := models.Lead{
		Name:              input.Name,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Email:             input.Email,
		Phone:             input.Phone,
		Company:           input.Company,
		Position:          input.Position,
		StateID:           input.StateID,
		CategoryID:        input.CategoryID,
		PriorityID:        input.PriorityID,
		SourceID:          input.SourceID,
		AssignedTo:        input.AssignedTo,
		Budget:            input.Budget,
		ExpectedCloseDate: input.ExpectedCloseDate,
		Notes:             input.Notes,
		CreatedBy:         currentUserID(c),
	}

	id, err := lc.Store.Leads.Create(c.Context(), &lead)
	if err != nil {
		return storeError(c, "Failed to create lead", err)
	}

	LogActivity(c, lc.Store, "lead_created", "lead", &id, lead.Name)
	go lc.notifyNewLead(lead)

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(lead))
}

// notifyNewLead is fire and forget; a failed notification never fails
// the request.
func (lc *LeadController) notifyNewLead(lead models.Lead) {
	msg := fmt.Sprintf("New lead: %s", lead.Name)
	if lead.Company != "" {
		msg += " (" + lead.Company + ")"
	}
	if err := utils.SendTelegramMessage(msg); err != nil {
		lc.Logger.Printf("⚠️ telegram notification failed: %v", err)
	}
}

// GetLeads returns a filtered, paginated list of leads
func (lc *LeadController) GetLeads(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit > 100 {
		limit = 100
	}

	filter := store.LeadFilter{
		StateID:    queryID(c, "state_id"),
		CategoryID: queryID(c, "category_id"),
		AssignedTo: queryID(c, "assigned_to"),
		GroupID:    queryID(c, "group_id"),
		Search:     c.Query("search"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	leads, err := storeFor(c, lc.Store).Leads.List(c.Context(), filter)
	if err != nil {
		return storeError(c, "Failed to list leads", err)
	}

	return c.JSON(utils.SuccessResponse(utils.PaginatedResponse{
		Data:  leads,
		Count: len(leads),
		Page:  page,
		Limit: limit,
	}))
}

// GetLead returns one lead with resolved display names
func (lc *LeadController) GetLead(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	lead, err := storeFor(c, lc.Store).Leads.Get(c.Context(), id)
	if err != nil {
		return storeError(c, "Failed to get lead", err)
	}
	if lead == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
	}
	return c.JSON(utils.SuccessResponse(lead))
}

// UpdateLead applies a partial update; omitted fields stay untouched
func (lc *LeadController) UpdateLead(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))

	var patch store.LeadPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := lc.Store.Leads.Update(c.Context(), id, patch); err != nil {
		return storeError(c, "Failed to update lead", err)
	}

	LogActivity(c, lc.Store, "lead_updated", "lead", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}

// DeleteLead hard-deletes a lead
func (lc *LeadController) DeleteLead(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	if err := lc.Store.Leads.Delete(c.Context(), id); err != nil {
		return storeError(c, "Failed to delete lead", err)
	}

	LogActivity(c, lc.Store, "lead_deleted", "lead", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}

// ExportLeads streams the current filter result as CSV
func (lc *LeadController) ExportLeads(c *fiber.Ctx) error {
	filter := store.LeadFilter{
		StateID:    queryID(c, "state_id"),
		CategoryID: queryID(c, "category_id"),
		AssignedTo: queryID(c, "assigned_to"),
		GroupID:    queryID(c, "group_id"),
		Search:     c.Query("search"),
		Limit:      10000,
	}

	leads, err := storeFor(c, lc.Store).Leads.List(c.Context(), filter)
	if err != nil {
		return storeError(c, "Failed to export leads", err)
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="leads_export.csv"`)

	w := csv.NewWriter(c.Response().BodyWriter())
	header := []string{"id", "name", "email", "phone", "company", "position",
		"state", "category", "priority", "source", "assigned_to", "group", "notes"}
	if err := w.Write(header); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to write CSV", err)
	}
	for _, l := range leads {
		record := []string{
			strconv.FormatInt(l.ID, 10),
			l.Name, l.Email, l.Phone, l.Company, l.Position,
			l.StateName, l.CategoryName, l.PriorityName, l.SourceName,
			l.AssignedToName, l.GroupName, l.Notes,
		}
		if err := w.Write(record); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to write CSV", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to write CSV", err)
	}

	LogActivity(c, lc.Store, "leads_exported", "lead", nil, fmt.Sprintf("%d rows", len(leads)))
	return nil
}
