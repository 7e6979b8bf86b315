package domain

import "errors"

var (
	// ErrProductNotFound is returned when neither source holds the requested product
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrUpstreamUnavailable is returned when the remote catalog feed fails or times out
	ErrUpstreamUnavailable = errors.New("remote catalog unavailable")

	// ErrStoreUnavailable is returned when the local product store fails
	ErrStoreUnavailable = errors.New("product store unavailable")

	// ErrAlreadyReviewed is returned when a user reviews the same product twice
	ErrAlreadyReviewed = errors.New("product already reviewed by user")

	// ErrUnauthorized is returned when no valid identity accompanies the request
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden is returned when the identity lacks the required role
	ErrForbidden = errors.New("insufficient privileges")
)
