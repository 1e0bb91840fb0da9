package services

import "errors"

var (
	// ErrUnassignedSlots is returned when a schedule leaves some slots without cover
	ErrUnassignedSlots = errors.New("schedule has unassigned slots")

	// ErrInvalidPeriod is returned when the period ends before it starts
	ErrInvalidPeriod = errors.New("period end is before start")

	// ErrNoStore is returned when saving is requested without a database
	ErrNoStore = errors.New("no database configured")
)
