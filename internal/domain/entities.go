// Package domain holds the error taxonomy and the small set of shared
// entities used across handlers and services.
package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrNotFound            = errors.New("not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrInternal            = errors.New("internal error")
)

// HealthStatus is the payload returned by the healthcheck endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ProcessingResult is the fixed-shape outcome of the nested-operations
// demonstration workflow.
type ProcessingResult struct {
	Processed bool   `json:"processed"`
	Items     int    `json:"items"`
	Output    string `json:"output"`
}

// EmailCredentials is authentication scaffolding kept for future
// endpoints; nothing in the template consumes it yet.
type EmailCredentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

var credentialsValidator = validator.New()

// Validate checks the credential fields against their constraints.
func (c EmailCredentials) Validate() error {
	if err := credentialsValidator.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return nil
}
