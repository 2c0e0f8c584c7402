package model

import "errors"

var (
	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Calculation related errors
	ErrCalculationNotFound = errors.New("calculation not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
