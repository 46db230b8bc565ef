package handlers

import (
	"net/http"
	"strings"

	"help-app-api/apperrors"
	"help-app-api/validation"

	"github.com/gin-gonic/gin"
)

type CreateServiceRequest struct {
	Name string `json:"name"`
}

func (r *CreateServiceRequest) Validate() []string {
	var errs validation.Errors
	if errs.Required("name", r.Name) {
		errs.MaxLength("name", r.Name, 100)
	}
	return errs
}

// ListServices returns all service types (public)
func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.catalog.List(c.Request.Context())
	if err != nil {
		apperrors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *Handler) GetService(c *gin.Context) {
	service, err := h.catalog.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// CreateService adds a service type. Any authenticated user may call it.
func (h *Handler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if !bind(c, &req) {
		return
	}

	service, err := h.catalog.Create(c.Request.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		apperrors.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}
