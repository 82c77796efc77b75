package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"leadhub/models"
	"leadhub/store"
	"leadhub/utils"
)

type AuthController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewAuthController(st *store.Store, logger *log.Logger) *AuthController {
	return &AuthController{Store: st, Logger: logger}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// Login authenticates by username and password. Inactive accounts are
// rejected with the same message as bad credentials.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	user, err := ac.Store.Users.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", err)
	}
	if user == nil || !user.IsActive || !utils.CheckPassword(user.PasswordHash, req.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid username or password", nil)
	}

	accessToken, refreshToken, err := utils.GenerateJWTToken(user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate token", err)
	}

	if err := ac.Store.Users.TouchLastLogin(c.Context(), user.ID); err != nil {
		ac.Logger.Printf("⚠️ touch last login failed for user %d: %v", user.ID, err)
	}
	ac.Store.Activity.Log(c.Context(), models.ActivityLogEntry{
		UserID:     &user.ID,
		Action:     "login",
		EntityType: "user",
		EntityID:   &user.ID,
	})

	return c.JSON(utils.SuccessResponse(AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}))
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	var req RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	claims, err := utils.ParseJWTToken(req.RefreshToken)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired refresh token", nil)
	}

	user, err := ac.Store.Users.Get(c.Context(), claims.UserID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Token refresh failed", err)
	}
	if user == nil || !user.IsActive {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Account is not active", nil)
	}

	accessToken, refreshToken, err := utils.GenerateJWTToken(user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate token", err)
	}

	return c.JSON(utils.SuccessResponse(AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}))
}

// GetCurrentUser returns the authenticated account.
func (ac *AuthController) GetCurrentUser(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.JSON(utils.SuccessResponse(user))
}

// ChangePassword lets a user rotate their own password after proving
// the current one.
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if !utils.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Current password is incorrect", nil)
	}

	// Self-service path bypasses the admin gate on purpose; the store
	// still hashes before persisting.
	admin := models.Actor{ID: user.ID, Role: models.RoleAdmin}
	err := ac.Store.Users.Update(c.Context(), admin, user.ID, store.UserPatch{Password: &req.NewPassword})
	if err != nil {
		return storeError(c, "Failed to change password", err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{"message": "Password changed"}))
}

// Logout only records the event; tokens stay valid until expiry.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	ac.Store.Activity.Log(c.Context(), models.ActivityLogEntry{
		UserID:     &user.ID,
		Action:     "logout",
		EntityType: "user",
		EntityID:   &user.ID,
	})
	return c.JSON(utils.SuccessResponse(fiber.Map{"message": "Logged out"}))
}
