package statemachine

import (
	"errors"

	"food-ordering-api/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "customer", "system", "admin"
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Customer pays the full amount up front
	{From: models.StatusPending, To: models.StatusPaid, Actor: "customer"},
	// Customer pays with a split bill; invitee shares still outstanding
	{From: models.StatusPending, To: models.StatusPartiallyPaid, Actor: "customer"},
	// All split shares settled
	{From: models.StatusPartiallyPaid, To: models.StatusPaid, Actor: "system"},
	// Admin marks delivery complete (also frees the assigned agent)
	{From: models.StatusPending, To: models.StatusDelivered, Actor: "admin"},
	{From: models.StatusPartiallyPaid, To: models.StatusDelivered, Actor: "admin"},
	{From: models.StatusPaid, To: models.StatusDelivered, Actor: "admin"},
	// Admin cancels at any point before a terminal state
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "admin"},
	{From: models.StatusPartiallyPaid, To: models.StatusCancelled, Actor: "admin"},
	{From: models.StatusPaid, To: models.StatusCancelled, Actor: "admin"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// IsValidStatus reports whether s is one of the closed set of order states
func IsValidStatus(s models.OrderStatus) bool {
	switch s {
	case models.StatusPending, models.StatusPartiallyPaid, models.StatusPaid,
		models.StatusDelivered, models.StatusCancelled:
		return true
	}
	return false
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
