package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"leadhub/models"
	"leadhub/store"
	"leadhub/utils"
)

type GroupController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewGroupController(st *store.Store, logger *log.Logger) *GroupController {
	return &GroupController{Store: st, Logger: logger}
}

// CreateGroup creates a lead group
func (gc *GroupController) CreateGroup(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name" validate:"required,max=100"`
		Description string `json:"description"`
		Color       string `json:"color" validate:"omitempty,max=20"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	group := models.LeadGroup{
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
		CreatedBy:   currentUserID(c),
	}

	id, err := gc.Store.Groups.Create(c.Context(), &group)
	if err != nil {
		return storeError(c, "Failed to create group", err)
	}

	LogActivity(c, gc.Store, "group_created", "group", &id, group.Name)
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(group))
}

// GetGroups lists groups; inactive ones only on request
func (gc *GroupController) GetGroups(c *fiber.Ctx) error {
	includeInactive := c.Query("include_inactive") == "true"
	groups, err := gc.Store.Groups.List(c.Context(), includeInactive)
	if err != nil {
		return storeError(c, "Failed to list groups", err)
	}
	return c.JSON(utils.SuccessResponse(groups))
}

// GetGroup returns one group with its member list
func (gc *GroupController) GetGroup(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	group, err := gc.Store.Groups.Get(c.Context(), id)
	if err != nil {
		return storeError(c, "Failed to get group", err)
	}
	if group == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Group not found", nil)
	}
	return c.JSON(utils.SuccessResponse(group))
}

// UpdateGroup applies a partial update
func (gc *GroupController) UpdateGroup(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))

	var patch store.GroupPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := gc.Store.Groups.Update(c.Context(), id, patch); err != nil {
		return storeError(c, "Failed to update group", err)
	}

	LogActivity(c, gc.Store, "group_updated", "group", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}

// DeactivateGroup soft-deletes a group; its leads keep their
// assignment
func (gc *GroupController) DeactivateGroup(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	if err := gc.Store.Groups.Deactivate(c.Context(), id); err != nil {
		return storeError(c, "Failed to deactivate group", err)
	}

	LogActivity(c, gc.Store, "group_deactivated", "group", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}

// AddMember puts a user into the group; re-adding updates the manage
// flag
func (gc *GroupController) AddMember(c *fiber.Ctx) error {
	groupID := utils.ParseID(c.Params("id"))

	var input struct {
		UserID    int64 `json:"user_id" validate:"required"`
		CanManage bool  `json:"can_manage"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if err := gc.Store.Groups.AddMember(c.Context(), groupID, input.UserID, input.CanManage); err != nil {
		return storeError(c, "Failed to add group member", err)
	}

	LogActivity(c, gc.Store, "group_member_added", "group", &groupID, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"group_id": groupID, "user_id": input.UserID}))
}

// RemoveMember takes a user out of the group
func (gc *GroupController) RemoveMember(c *fiber.Ctx) error {
	groupID := utils.ParseID(c.Params("id"))
	userID := utils.ParseID(c.Params("userID"))

	if err := gc.Store.Groups.RemoveMember(c.Context(), groupID, userID); err != nil {
		return storeError(c, "Failed to remove group member", err)
	}

	LogActivity(c, gc.Store, "group_member_removed", "group", &groupID, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"group_id": groupID, "user_id": userID}))
}

// AssignLead moves a lead into the group, or out of any group when
// group_id is null
func (gc *GroupController) AssignLead(c *fiber.Ctx) error {
	leadID := utils.ParseID(c.Params("leadID"))

	var input struct {
		GroupID *int64 `json:"group_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := gc.Store.Groups.AssignLead(c.Context(), leadID, input.GroupID); err != nil {
		return storeError(c, "Failed to assign lead", err)
	}

	LogActivity(c, gc.Store, "lead_group_assigned", "lead", &leadID, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"lead_id": leadID, "group_id": input.GroupID}))
}
