// Package repository defines sentinel errors reused across repositories.
// These values let handlers distinguish failure scenarios without string
// matching.  Note that ownership mismatches on measurements are deliberately
// reported as not-found rather than forbidden: a caller must not be able to
// learn whether another user's measurement id exists.
package repository

import "errors"

// ErrMeasurementNotFound is returned when a measurement lookup misses,
// either because the row does not exist or because the ownership filter
// excluded it.
var ErrMeasurementNotFound = errors.New("measurement not found")

// ErrUserNotFound is returned when a user lookup misses.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when registering with an email that is taken.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is returned when registering with a username that is taken.
var ErrUsernameExists = errors.New("username already exists")
