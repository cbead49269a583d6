package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/presswire/PressWire/app/models"
	"github.com/presswire/PressWire/app/repository"
	"github.com/presswire/PressWire/internal/pkg/session"
	"github.com/presswire/PressWire/internal/pkg/usercontext"
)

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a new user account and logs it in
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	user, err := models.CreateUser(req.Username, req.Email, req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	if err := userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, fiber.StatusConflict, "conflict", "username or email already taken")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not create user")
	}

	if err := startSession(c, user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not start session")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleLogin authenticates by email and password
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByEmail(req.Email)
	if err != nil || !models.CheckPasswordHash(req.Password, user.Password) {
		// Identical response for unknown email and wrong password
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "invalid credentials")
	}
	if !user.IsActive() {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "account is not active")
	}

	if err := startSession(c, user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not start session")
	}
	if err := userRepo.TouchLastLogin(user.ID, time.Now()); err == nil {
		now := time.Now()
		user.LastLoginAt = &now
	}

	return c.JSON(user)
}

// HandleLogout destroys the caller's session
func HandleLogout(c *fiber.Ctx) error {
	if err := session.DestroySession(c); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not destroy session")
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}

// HandleMe returns the authenticated user's account
func HandleMe(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)
	if !user.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "authentication required")
	}

	account, err := repository.GetGlobalFactory().GetUserRepository().GetByID(user.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "user not found")
	}
	return c.JSON(account)
}

func startSession(c *fiber.Ctx, user *models.User) error {
	if err := session.SetSessionValue(c, usercontext.KeyUserID, user.ID); err != nil {
		return err
	}
	if err := session.SetSessionValue(c, usercontext.KeyUsername, user.Username); err != nil {
		return err
	}
	if err := session.SetSessionValue(c, usercontext.KeyIsStaff, user.IsStaff()); err != nil {
		return err
	}
	return session.SetSessionValue(c, usercontext.KeyLoggedIn, true)
}
