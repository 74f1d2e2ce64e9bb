package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP status codes; everything else is a 500.
var (
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrPlanNotFound       = errors.New("plan not found")

	// ErrGeneration marks a failure of the external model provider or a
	// malformed provider response, during either plan generation or goal
	// estimation.
	ErrGeneration = errors.New("plan generation failed")

	// ErrStorage marks a persistence failure after a successful
	// generation run.
	ErrStorage = errors.New("plan storage failed")
)
