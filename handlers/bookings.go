package handlers

import (
	"net/http"
	"time"

	"help-app-api/apperrors"
	"help-app-api/bookings"
	"help-app-api/middleware"
	"help-app-api/models"
	"help-app-api/validation"

	"github.com/gin-gonic/gin"
)

type CreateBookingRequest struct {
	ServiceID     string  `json:"serviceId"`
	ProviderID    *string `json:"providerId"`
	ScheduledDate string  `json:"scheduledDate"`

	scheduled time.Time
}

func (r *CreateBookingRequest) Validate() []string {
	var errs validation.Errors
	errs.Required("serviceId", r.ServiceID)
	if r.ProviderID != nil {
		errs.Required("providerId", *r.ProviderID)
	}
	r.scheduled = errs.DateTime("scheduledDate", r.ScheduledDate)
	return errs
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateBookingStatusRequest) Validate() []string {
	statuses := make([]string, len(models.BookingStatuses))
	for i, s := range models.BookingStatuses {
		statuses[i] = string(s)
	}
	var errs validation.Errors
	errs.OneOf("status", r.Status, statuses...)
	return errs
}

// CreateBooking books a service for the caller. The booking starts PENDING.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if !bind(c, &req) {
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), bookings.CreateInput{
		ServiceID:     req.ServiceID,
		ClientID:      middleware.GetUserID(c),
		ProviderID:    req.ProviderID,
		ScheduledDate: req.scheduled,
	})
	if err != nil {
		apperrors.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ListBookings returns every booking the caller is client or provider of
func (h *Handler) ListBookings(c *gin.Context) {
	list, err := h.bookings.FindByUserID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		apperrors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateBookingStatus handles the assigned provider's state transitions
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	var req UpdateBookingStatusRequest
	if !bind(c, &req) {
		return
	}

	booking, err := h.bookings.UpdateStatus(
		c.Request.Context(),
		c.Param("id"),
		middleware.GetUserID(c),
		models.BookingStatus(req.Status),
	)
	if err != nil {
		apperrors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
