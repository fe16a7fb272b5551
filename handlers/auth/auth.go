package auth

import (
	"errors"

	"github.com/campusworks/collage-api/model"
	"github.com/campusworks/collage-api/utils/auth"
	"github.com/campusworks/collage-api/utils/middleware"
	"github.com/campusworks/collage-api/utils/response"
	"github.com/campusworks/collage-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login and session introspection
type AuthHandler struct {
	db             *gorm.DB
	jwtManager     *auth.JWTManager
	validator      *validation.Validator
	googleClientID string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtManager *auth.JWTManager, validator *validation.Validator, googleClientID string) *AuthHandler {
	return &AuthHandler{
		db:             db,
		jwtManager:     jwtManager,
		validator:      validator,
		googleClientID: googleClientID,
	}
}

// RegisterRequest is the local account registration payload
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the local account login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token to exchange
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// tokenPair is the issued session material
type tokenPair struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         *model.User `json:"user"`
}

// Register creates a local GUEST account
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var existing model.User
	err := h.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return response.Conflict(c, "An account with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.InternalServerError(c, "Failed to check existing account")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	user := model.User{
		Name:         validation.SanitizeString(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		UserType:     model.UserTypeGuest,
	}
	if err := h.db.Create(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to create account")
	}

	return h.issueTokens(c, &user, fiber.StatusCreated)
}

// Login authenticates a local account
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var user model.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.Unauthorized(c, "Invalid email or password")
		}
		return response.InternalServerError(c, "Failed to load account")
	}
	if user.PasswordHash == "" {
		// Provider-only accounts have no local password
		return response.Unauthorized(c, "This account signs in with Google")
	}
	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return response.Unauthorized(c, "Invalid email or password")
	}

	return h.issueTokens(c, &user, fiber.StatusOK)
}

// Refresh exchanges a valid refresh token for a new token pair
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	claims, err := h.jwtManager.ValidateToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return response.Unauthorized(c, "Refresh token has expired")
		}
		return response.Unauthorized(c, "Invalid refresh token")
	}
	if claims.TokenType != "refresh" {
		return response.Unauthorized(c, "Invalid refresh token")
	}

	var user model.User
	if err := h.db.First(&user, claims.UserID).Error; err != nil {
		return response.Unauthorized(c, "Account no longer exists")
	}

	return h.issueTokens(c, &user, fiber.StatusOK)
}

// Profile returns the authenticated user
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "Authentication required")
	}
	return response.Success(c, user)
}

func (h *AuthHandler) issueTokens(c *fiber.Ctx, user *model.User, status int) error {
	access, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, user.UserType)
	if err != nil {
		return response.InternalServerError(c, "Failed to issue tokens")
	}
	refresh, err := h.jwtManager.GenerateRefreshToken(user.ID, user.Email, user.UserType)
	if err != nil {
		return response.InternalServerError(c, "Failed to issue tokens")
	}

	return c.Status(status).JSON(response.Response{
		Success: true,
		Data: tokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
			User:         user,
		},
	})
}
