package statemachine

import (
	"errors"
	"strings"

	"help-app-api/models"
)

// Transition defines a valid status change. Only the provider assigned to a
// booking may perform one, so no actor is recorded per edge.
type Transition struct {
	From models.BookingStatus `json:"from"`
	To   models.BookingStatus `json:"to"`
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Provider answers the request
	{From: models.StatusPending, To: models.StatusAccepted},
	{From: models.StatusPending, To: models.StatusRejected},
	// Accepted work is either done or called off
	{From: models.StatusAccepted, To: models.StatusCompleted},
	{From: models.StatusAccepted, To: models.StatusCancelled},
}

var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool, len(validTransitions))
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.BookingStatus) []models.BookingStatus {
	var nexts []models.BookingStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// IsTerminal reports whether no transition leaves status
func IsTerminal(status models.BookingStatus) bool {
	return len(ValidTransitionsFrom(status)) == 0
}

// TerminalStates lists the known statuses nothing can leave
func TerminalStates() []models.BookingStatus {
	var out []models.BookingStatus
	for _, s := range models.BookingStatuses {
		if IsTerminal(s) {
			out = append(out, s)
		}
	}
	return out
}

// CanTransition checks whether a booking may move from one state to another
func CanTransition(from, to models.BookingStatus) error {
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) + " is not allowed. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.BookingStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
