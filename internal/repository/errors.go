// Package repository implements all database queries for the event
// platform. It uses pgx directly (no ORM) for transparency and
// performance.
package repository

import "errors"

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrEventFull is returned when an event has no remaining capacity.
var ErrEventFull = errors.New("event is fully booked")

// ErrAlreadyRegistered is returned when a user holds an active
// registration for the event.
var ErrAlreadyRegistered = errors.New("already registered for this event")

// ErrNotRegistered is returned when a transition requires an active
// registration and none exists.
var ErrNotRegistered = errors.New("not registered for this event")

// ErrEmailTaken is returned when an account with the email already exists.
var ErrEmailTaken = errors.New("email already registered")
