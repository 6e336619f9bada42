package model

import "errors"

// Domain errors; the handler maps these to HTTP status codes.
var (
	ErrPetNotFound   = errors.New("pet not found")
	ErrNotOwner      = errors.New("you do not own this pet")
	ErrInvalidStatus = errors.New("invalid pet status")
)

// Error codes returned in the response envelope
const (
	ErrCodePetNotFound      = "PET_001"
	ErrCodeNotOwner         = "PET_002"
	ErrCodeInvalidStatus    = "PET_003"
	ErrCodeValidationFailed = "PET_004"
)
