package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pf-responses/respuestas-api/internal/constants"
	"github.com/pf-responses/respuestas-api/internal/dto"
	apierrors "github.com/pf-responses/respuestas-api/internal/errors"
	"github.com/pf-responses/respuestas-api/internal/middleware"
	"github.com/pf-responses/respuestas-api/internal/services"
	"github.com/sirupsen/logrus"
)

// AuthHandler coordinates user registration and session handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a regular account. Privileged accounts are only created
// through the createsuperuser command.
func (h *AuthHandler) Register(c *gin.Context) {
	type ProfileRequest struct {
		FirstName string `json:"nombre" binding:"max=255"`
		LastName  string `json:"apellido" binding:"max=255"`
	}
	type RegisterRequest struct {
		Username string          `json:"nombre_usuario" binding:"required,max=255"`
		Email    string          `json:"email" binding:"required,email,max=254"`
		Password string          `json:"password" binding:"required,min=8"`
		Profile  *ProfileRequest `json:"persona"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, apierrors.FromBindingError(err))
		return
	}

	input := services.CreateUserInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}
	if req.Profile != nil {
		input.Profile = &services.ProfileInput{
			FirstName: req.Profile.FirstName,
			LastName:  req.Profile.LastName,
		}
	}

	user, err := h.authService.CreateUser(c.Request.Context(), input)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, apierrors.FromBindingError(err))
		return
	}

	user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		logrus.WithError(err).Error("failed to save session")
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	h.renderUser(c, userID)
}

// GetUser returns any user by ID.
func (h *AuthHandler) GetUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	h.renderUser(c, userID)
}

func (h *AuthHandler) renderUser(c *gin.Context, userID uint64) {
	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailRequired), errors.Is(err, services.ErrEmailTooLong):
		apierrors.ValidationFailed(c, apierrors.FieldErrors{"email": err.Error()})
	case errors.Is(err, services.ErrUsernameRequired), errors.Is(err, services.ErrUsernameTooLong):
		apierrors.ValidationFailed(c, apierrors.FieldErrors{"nombre_usuario": err.Error()})
	case errors.Is(err, services.ErrInvalidRole):
		apierrors.ValidationFailed(c, apierrors.FieldErrors{"tipo_usuario": err.Error()})
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.ValidationFailed(c, apierrors.FieldErrors{
			"password": fmt.Sprintf("must be at least %d characters", constants.MinPasswordLength),
		})
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrUserConflict):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		logrus.WithError(err).Error("user request failed")
		apierrors.InternalError(c, "")
	}
}
