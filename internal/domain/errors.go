package domain

import "errors"

// Sentinel errors shared across repositories and services. Controllers map
// these to HTTP status codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrTokenUsed        = errors.New("access token already used")
	ErrDuplicatePayment = errors.New("payment already processed")
	ErrForbidden        = errors.New("forbidden")
	ErrGatewayFailure   = errors.New("payment gateway failure")
	ErrMissingCredential = errors.New("payment gateway credential not configured")
)
