package handlers

import (
	"net/http"
	"strings"

	"help-app-api/apperrors"
	"help-app-api/auth"
	"help-app-api/middleware"
	"help-app-api/models"
	"help-app-api/validation"

	"github.com/gin-gonic/gin"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

func (r *SignupRequest) Validate() []string {
	var errs validation.Errors
	if errs.Required("name", r.Name) {
		errs.MaxLength("name", r.Name, 100)
	}
	errs.Email("email", r.Email)
	errs.MinLength("password", r.Password, 6)

	roles := make([]string, len(models.Roles))
	for i, role := range models.Roles {
		roles[i] = string(role)
	}
	errs.OneOf("userType", r.UserType, roles...)
	return errs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() []string {
	var errs validation.Errors
	errs.Email("email", r.Email)
	errs.Required("password", r.Password)
	return errs
}

// Signup creates a new user account
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if !bind(c, &req) {
		return
	}

	session, err := h.issuer.Signup(c.Request.Context(), auth.SignupInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: req.Password,
		Role:     models.UserRole(req.UserType),
	})
	if err != nil {
		apperrors.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Login authenticates a user and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}

	session, err := h.issuer.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apperrors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Me returns the authenticated user's profile
func (h *Handler) Me(c *gin.Context) {
	user, err := h.issuer.Profile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		apperrors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout revokes every token of the caller
func (h *Handler) Logout(c *gin.Context) {
	if err := h.issuer.DeleteUserTokens(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		apperrors.Write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
