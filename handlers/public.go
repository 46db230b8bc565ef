package handlers

import (
	"net/http"

	"help-app-api/statemachine"

	"github.com/gin-gonic/gin"
)

// Root answers the plain-text liveness probe
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Help App API",
		"version": "1.0.0",
	})
}

// GetStateMachineInfo returns the booking state machine for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"initial_state":   "PENDING",
		"terminal_states": statemachine.TerminalStates(),
		"actor":           "assigned provider",
		"description":     "Booking Lifecycle State Machine",
	})
}
