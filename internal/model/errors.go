package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrNoGeometry is returned when there are no schedulable tasks to lay out.
	ErrNoGeometry = errors.New("no timeline geometry")
	// ErrDragActive is returned when a drag is started while another one is in progress.
	ErrDragActive = errors.New("drag already in progress")
)
