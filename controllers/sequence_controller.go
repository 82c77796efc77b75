package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"leadhub/models"
	"leadhub/store"
	"leadhub/utils"
)

type SequenceController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewSequenceController(st *store.Store, logger *log.Logger) *SequenceController {
	return &SequenceController{Store: st, Logger: logger}
}

type sequenceStepInput struct {
	TemplateID int64 `json:"template_id" validate:"required"`
	DelayHours int   `json:"delay_hours" validate:"min=0"`
}

func toSteps(inputs []sequenceStepInput) []models.SequenceStep {
	steps := make([]models.SequenceStep, len(inputs))
	for i, in := range inputs {
		steps[i] = models.SequenceStep{TemplateID: in.TemplateID, DelayHours: in.DelayHours}
	}
	return steps
}

// CreateSequence creates a sequence definition with its ordered steps
func (sc *SequenceController) CreateSequence(c *fiber.Ctx) error {
	var input struct {
		Name         string              `json:"name" validate:"required,max=100"`
		Description  string              `json:"description"`
		TriggerEvent string              `json:"trigger_event" validate:"omitempty,max=50"`
		Conditions   string              `json:"conditions"`
		Steps        []sequenceStepInput `json:"steps" validate:"dive"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	seq := models.ContactSequence{
		Name:         input.Name,
		Description:  input.Description,
		TriggerEvent: input.TriggerEvent,
		Conditions:   input.Conditions,
		CreatedBy:    currentUserID(c),
		Steps:        toSteps(input.Steps),
	}

	id, err := sc.Store.Sequences.Create(c.Context(), &seq)
	if err != nil {
		return storeError(c, "Failed to create sequence", err)
	}

	LogActivity(c, sc.Store, "sequence_created", "sequence", &id, seq.Name)
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(seq))
}

// GetSequences lists sequence definitions
func (sc *SequenceController) GetSequences(c *fiber.Ctx) error {
	sequences, err := sc.Store.Sequences.List(c.Context(), c.Query("active_only") == "true")
	if err != nil {
		return storeError(c, "Failed to list sequences", err)
	}
	return c.JSON(utils.SuccessResponse(sequences))
}

// GetSequence returns one sequence with its ordered steps
func (sc *SequenceController) GetSequence(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	seq, err := sc.Store.Sequences.Get(c.Context(), id)
	if err != nil {
		return storeError(c, "Failed to get sequence", err)
	}
	if seq == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Sequence not found", nil)
	}
	return c.JSON(utils.SuccessResponse(seq))
}

// UpdateSequence applies a partial update to the definition
func (sc *SequenceController) UpdateSequence(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))

	var patch store.SequencePatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := sc.Store.Sequences.Update(c.Context(), id, patch); err != nil {
		return storeError(c, "Failed to update sequence", err)
	}

	LogActivity(c, sc.Store, "sequence_updated", "sequence", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}

// SetSequenceSteps replaces the step list; order is the request order
func (sc *SequenceController) SetSequenceSteps(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))

	var input struct {
		Steps []sequenceStepInput `json:"steps" validate:"dive"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if err := sc.Store.Sequences.SetSteps(c.Context(), id, toSteps(input.Steps)); err != nil {
		return storeError(c, "Failed to set sequence steps", err)
	}

	LogActivity(c, sc.Store, "sequence_steps_set", "sequence", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}

// DeleteSequence removes a sequence and its steps
func (sc *SequenceController) DeleteSequence(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	if err := sc.Store.Sequences.Delete(c.Context(), id); err != nil {
		return storeError(c, "Failed to delete sequence", err)
	}

	LogActivity(c, sc.Store, "sequence_deleted", "sequence", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}
