package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not allowed")

// ErrUnauthorized indicates the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("state conflict")

// Business rule violations of the daily close-out domain. These are
// recoverable: services return them without touching persistent state.

// ErrInvalidState indicates an attempt to mutate a ledger entry that belongs to a closed day.
var ErrInvalidState = errors.New("entry belongs to a closed day and is immutable")

// ErrInsufficientStock indicates a consignment sale requested more units than are in stock.
var ErrInsufficientStock = errors.New("insufficient consignment stock")

// ErrExceedsAvailable indicates a safe deposit larger than the cash counted in the drawer.
var ErrExceedsAvailable = errors.New("safe deposit exceeds counted drawer cash")

// ErrInvalidAmount indicates a payment amount outside the allowed range, e.g. a
// partial payment larger than the remaining debt.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrDuplicateClosing indicates the business day already has a closing record.
var ErrDuplicateClosing = errors.New("business day is already closed")

// ErrAlreadyReconciled indicates a delivery platform sale that was reconciled before.
var ErrAlreadyReconciled = errors.New("sale is already reconciled")
