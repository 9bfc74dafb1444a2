package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrDuplicateUnitCode indicates that a sale reused an already registered unit code.
var ErrDuplicateUnitCode = errors.New("unit code already exists")

// ErrRateNotFound indicates that no rate bundle exists for the requested
// property type. A sale cannot be priced without one.
var ErrRateNotFound = errors.New("no rates found for property type")

// ErrInvalidDate indicates a sale date that could not be parsed as YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid sale date")

// ErrInvalidPrice indicates a non-positive unit price.
var ErrInvalidPrice = errors.New("unit price must be positive")

// ErrConcurrencyConflict indicates that a treasury write lost a lock or
// serialization race. Callers retry a bounded number of times before
// surfacing it.
var ErrConcurrencyConflict = errors.New("concurrent treasury update conflict")

// ErrForbidden indicates the authenticated user lacks the required role.
var ErrForbidden = errors.New("operation not permitted for this role")
