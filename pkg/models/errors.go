package models

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrEphemeralID    = errors.New("order has no stable backend id")
	ErrDuplicatePhone = errors.New("phone number already registered")
	ErrValidation     = errors.New("validation failed")
)
