package controller

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"leadhub/models"
	"leadhub/store"
	"leadhub/utils"
)

type TaskController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewTaskController(st *store.Store, logger *log.Logger) *TaskController {
	return &TaskController{Store: st, Logger: logger}
}

// CreateTask creates a task, optionally linked to a lead
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	var input struct {
		Title       string     `json:"title" validate:"required,max=200"`
		Description string     `json:"description"`
		TypeID      *int64     `json:"type_id"`
		StateID     *int64     `json:"state_id"`
		PriorityID  *int64     `json:"priority_id"`
		AssignedTo  *int64     `json:"assigned_to"`
		LeadID      *int64     `json:"lead_id"`
		DueDate     *time.Time `json:"due_date"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	task := models.Task{
		Title:       input.Title,
		Description: input.Description,
		TypeID:      input.TypeID,
		StateID:     input.StateID,
		PriorityID:  input.PriorityID,
		AssignedTo:  input.AssignedTo,
		LeadID:      input.LeadID,
		DueDate:     input.DueDate,
		CreatedBy:   currentUserID(c),
	}

	id, err := tc.Store.Tasks.Create(c.Context(), &task)
	if err != nil {
		return storeError(c, "Failed to create task", err)
	}

	LogActivity(c, tc.Store, "task_created", "task", &id, task.Title)
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(task))
}

// GetTasks returns a filtered, paginated list of tasks
func (tc *TaskController) GetTasks(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit > 100 {
		limit = 100
	}

	filter := store.TaskFilter{
		StateID:    queryID(c, "state_id"),
		TypeID:     queryID(c, "type_id"),
		AssignedTo: queryID(c, "assigned_to"),
		LeadID:     queryID(c, "lead_id"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	tasks, err := storeFor(c, tc.Store).Tasks.List(c.Context(), filter)
	if err != nil {
		return storeError(c, "Failed to list tasks", err)
	}

	return c.JSON(utils.SuccessResponse(utils.PaginatedResponse{
		Data:  tasks,
		Count: len(tasks),
		Page:  page,
		Limit: limit,
	}))
}

// GetTask returns one task with resolved display names
func (tc *TaskController) GetTask(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	task, err := storeFor(c, tc.Store).Tasks.Get(c.Context(), id)
	if err != nil {
		return storeError(c, "Failed to get task", err)
	}
	if task == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}
	return c.JSON(utils.SuccessResponse(task))
}

// UpdateTask applies a partial update
func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))

	var patch store.TaskPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := tc.Store.Tasks.Update(c.Context(), id, patch); err != nil {
		return storeError(c, "Failed to update task", err)
	}

	LogActivity(c, tc.Store, "task_updated", "task", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}

// DeleteTask hard-deletes a task
func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	if err := tc.Store.Tasks.Delete(c.Context(), id); err != nil {
		return storeError(c, "Failed to delete task", err)
	}

	LogActivity(c, tc.Store, "task_deleted", "task", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}

// AdvanceTask moves the task to the next state; already-final tasks
// report a no-op instead of an error
func (tc *TaskController) AdvanceTask(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	result, err := tc.Store.Tasks.Advance(c.Context(), id)
	if err != nil {
		return storeError(c, "Failed to advance task", err)
	}
	if result == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	if result.Moved {
		LogActivity(c, tc.Store, "task_advanced", "task", &id, result.Message)
	}
	return c.JSON(utils.SuccessResponse(result))
}
