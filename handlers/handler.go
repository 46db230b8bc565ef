package handlers

import (
	"encoding/json"
	"errors"

	"help-app-api/apperrors"
	"help-app-api/auth"
	"help-app-api/bookings"
	"help-app-api/catalog"
	"help-app-api/reviews"

	"github.com/gin-gonic/gin"
)

// Handler serves the HTTP API on top of the domain components
type Handler struct {
	issuer   *auth.Issuer
	catalog  *catalog.Catalog
	bookings *bookings.Lifecycle
	reviews  *reviews.Ledger
}

func New(issuer *auth.Issuer, catalog *catalog.Catalog, bookings *bookings.Lifecycle, reviews *reviews.Ledger) *Handler {
	return &Handler{
		issuer:   issuer,
		catalog:  catalog,
		bookings: bookings,
		reviews:  reviews,
	}
}

// validator is implemented by every request body
type validator interface {
	Validate() []string
}

// bind decodes the JSON body into req and runs its field checks. It writes
// the error response itself and reports whether the handler may continue.
func bind(c *gin.Context, req validator) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apperrors.Write(c, apperrors.NewValidation([]string{decodeMessage(err)}))
		return false
	}
	if errs := req.Validate(); len(errs) > 0 {
		apperrors.Write(c, apperrors.NewValidation(errs))
		return false
	}
	return true
}

// decodeMessage describes a body decoding failure without leaking Go types
func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field + " has the wrong type"
	}
	return "request body must be valid JSON"
}
