package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"siteworks/internal/errors"
	"siteworks/internal/model"
	"siteworks/internal/service"
)

// AuthHandler handles authentication and account endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest represents a partial profile update. Absent fields are
// left unchanged.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Company   *string `json:"company"`
}

// ChangePasswordRequest represents a password change for a logged-in user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// UpdateNotificationsRequest represents a partial update of the four
// preference flags.
type UpdateNotificationsRequest struct {
	ProjectUpdates *bool `json:"projectUpdates"`
	TicketReplies  *bool `json:"ticketReplies"`
	Invoices       *bool `json:"invoices"`
	Marketing      *bool `json:"marketing"`
}

// ForgotPasswordRequest represents a password reset request.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest represents a password reset redemption.
type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// forgotPasswordMessage is returned whether or not the email exists.
const forgotPasswordMessage = "If an account with that email exists, a password reset link has been sent."

// Register godoc
// @Summary Register a new client account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail(validationMessage(err)))
	}

	user, token, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Company:   req.Company,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
	}

	return c.JSON(http.StatusCreated, errors.OK(echo.Map{
		"user":  user,
		"token": token,
	}))
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail(validationMessage(err)))
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
	}

	return c.JSON(http.StatusOK, errors.OK(echo.Map{
		"user":  user,
		"token": token,
	}))
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
	}

	return c.JSON(http.StatusOK, errors.OK(echo.Map{
		"user":          user,
		"notifications": user.Notifications(),
	}))
}

// UpdateProfile godoc
// @Summary Update profile fields
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), claims.UserID, model.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Company:   req.Company,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
	}

	return c.JSON(http.StatusOK, errors.OK(echo.Map{"user": user}))
}

// ChangePassword godoc
// @Summary Change the current password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Password change"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail(validationMessage(err)))
	}

	if err := h.authService.ChangePassword(c.Request().Context(), claims.UserID,
		req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
	}

	return c.JSON(http.StatusOK, errors.OKMessage("password updated"))
}

// UpdateNotifications godoc
// @Summary Update notification preferences
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateNotificationsRequest true "Flags to update"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /auth/notifications [put]
func (h *AuthHandler) UpdateNotifications(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req UpdateNotificationsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}

	prefs, err := h.authService.UpdateNotificationPreferences(c.Request().Context(), claims.UserID, model.NotificationUpdate{
		ProjectUpdates: req.ProjectUpdates,
		TicketReplies:  req.TicketReplies,
		Invoices:       req.Invoices,
		Marketing:      req.Marketing,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
	}

	return c.JSON(http.StatusOK, errors.OK(echo.Map{"notifications": prefs}))
}

// ForgotPassword godoc
// @Summary Request a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail(validationMessage(err)))
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
	}

	// Identical response whether or not the email exists.
	return c.JSON(http.StatusOK, errors.OKMessage(forgotPasswordMessage))
}

// ResetPassword godoc
// @Summary Set a new password using a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Token and new password"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail(validationMessage(err)))
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Token, req.NewPassword, req.ConfirmPassword); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
	}

	return c.JSON(http.StatusOK, errors.OKMessage("password has been reset, you can now log in"))
}
