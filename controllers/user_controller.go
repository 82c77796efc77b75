package controller

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"leadhub/models"
	"leadhub/store"
	"leadhub/utils"
)

type UserController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewUserController(st *store.Store, logger *log.Logger) *UserController {
	return &UserController{Store: st, Logger: logger}
}

// CreateUser creates an account; only admins get past the store gate
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var input struct {
		Username     string `json:"username" validate:"required,min=3,max=50"`
		Email        string `json:"email" validate:"omitempty,email"`
		Password     string `json:"password" validate:"required,min=8"`
		FirstName    string `json:"first_name" validate:"omitempty,max=100"`
		LastName     string `json:"last_name" validate:"omitempty,max=100"`
		Phone        string `json:"phone" validate:"omitempty,max=50"`
		RoleID       *int64 `json:"role_id"`
		DepartmentID *int64 `json:"department_id"`
		IsAdmin      bool   `json:"is_admin"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		RoleID:       input.RoleID,
		DepartmentID: input.DepartmentID,
		IsActive:     true,
		IsAdmin:      input.IsAdmin,
	}

	id, err := uc.Store.Users.Create(c.Context(), actorFrom(c), &user, input.Password)
	if err != nil {
		return storeError(c, "Failed to create user", err)
	}

	LogActivity(c, uc.Store, "user_created", "user", &id, user.Username)
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(user))
}

// GetUsers returns a filtered, paginated list of users
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit > 100 {
		limit = 100
	}

	filter := store.UserFilter{
		RoleID:       queryID(c, "role_id"),
		DepartmentID: queryID(c, "department_id"),
		ActiveOnly:   c.Query("active_only") == "true",
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}

	users, err := storeFor(c, uc.Store).Users.List(c.Context(), filter)
	if err != nil {
		return storeError(c, "Failed to list users", err)
	}

	return c.JSON(utils.SuccessResponse(utils.PaginatedResponse{
		Data:  users,
		Count: len(users),
		Page:  page,
		Limit: limit,
	}))
}

// GetUser returns one account
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	user, err := storeFor(c, uc.Store).Users.Get(c.Context(), id)
	if err != nil {
		return storeError(c, "Failed to get user", err)
	}
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
	}
	return c.JSON(utils.SuccessResponse(user))
}

// UpdateUser applies a partial update; a supplied password is hashed
// by the store before persisting
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))

	var patch store.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := uc.Store.Users.Update(c.Context(), actorFrom(c), id, patch); err != nil {
		return storeError(c, "Failed to update user", err)
	}

	LogActivity(c, uc.Store, "user_updated", "user", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}

// DeleteUser removes an account; deleting the last active admin is
// refused, even as a self-delete
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	id := utils.ParseID(c.Params("id"))
	if err := uc.Store.Users.Delete(c.Context(), actorFrom(c), id); err != nil {
		return storeError(c, "Failed to delete user", err)
	}

	LogActivity(c, uc.Store, "user_deleted", "user", &id, "")
	return c.JSON(utils.SuccessResponse(fiber.Map{"id": id}))
}
