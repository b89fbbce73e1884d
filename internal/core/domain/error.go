package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound           = errors.New("data not found")
	ErrConflictingData        = errors.New("data conflicts with existing data in unique column")
	ErrConcurrentModification = errors.New("order was modified concurrently, reload and retry")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid login or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")

	// * Business errors.
	ErrInvalidTransition         = errors.New("status transition is not allowed")
	ErrMissingRejectionReason    = errors.New("rejection requires a reason of at least 10 characters")
	ErrInvalidQuantity           = errors.New("quantity must be at least 1")
	ErrInvalidQuoteInput         = errors.New("quote cost, margin and quantity must not be negative")
	ErrInsufficientQuotes        = errors.New("at least two quotes are required for comparison")
	ErrLineItemNotFound          = errors.New("line item not found in order")
	ErrQuoteNotFound             = errors.New("quote not found in line item")
	ErrOrderTerminal             = errors.New("order is in a terminal status")
	ErrInvalidStateForBulkImport = errors.New("bulk import is only allowed for new or sent orders")
	ErrUnknownStatus             = errors.New("unknown order status")

	// * Bulk import errors.
	ErrNoValidLines     = errors.New("no valid lines found in pasted text")
	ErrBulkImportFailed = errors.New("bulk import added no line items")
	ErrCatalogLookup    = errors.New("catalog lookup failed")
	ErrCatalogCreate    = errors.New("catalog reference creation failed")
)

// InvalidTransitionError reports a transition outside the allowed
// destination set. It matches ErrInvalidTransition under errors.Is.
type InvalidTransitionError struct {
	From    OrderStatus
	To      OrderStatus
	Allowed []OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transition %s -> %s is not allowed (allowed: %v)", e.From, e.To, e.Allowed)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
