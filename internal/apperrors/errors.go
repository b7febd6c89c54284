package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrCacheMiss indicates that no fresh entry exists for a cache key.
// Callers treat this as a signal to fetch, never as a failure.
var ErrCacheMiss = errors.New("cache miss")

// ErrProviderUnavailable indicates that an external rate provider could not
// be reached or returned an unusable response.
var ErrProviderUnavailable = errors.New("rate provider unavailable")
