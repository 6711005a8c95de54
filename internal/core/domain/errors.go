package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the core wraps exactly one of these.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("invalid state")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var (
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrVendorNotFound   = fmt.Errorf("vendor %w", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrCartLineNotFound = fmt.Errorf("cart line %w", ErrNotFound)
	ErrSaleNotFound     = fmt.Errorf("sale %w", ErrNotFound)

	ErrCartEmpty            = fmt.Errorf("%w: cart empty", ErrInvalidState)
	ErrAlreadyShipped       = fmt.Errorf("%w: sale already shipped", ErrInvalidState)
	ErrSettlementInProgress = fmt.Errorf("%w: settlement already in progress", ErrInvalidState)
	ErrCartChanged          = fmt.Errorf("%w: cart changed during settlement", ErrInvalidState)

	ErrNotVendor      = fmt.Errorf("%w: vendor role required", ErrForbidden)
	ErrNotOwner       = fmt.Errorf("%w: not the owner", ErrForbidden)
	ErrUserExists     = fmt.Errorf("user already exists: %w", ErrConflict)
	ErrInvalidQty     = fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidArgument, MaxQuantity)
	ErrInvalidPrice   = fmt.Errorf("%w: price must be between 0 and %s with at most 2 decimals", ErrInvalidArgument, MaxPrice)
	ErrInvalidAmount  = fmt.Errorf("%w: amount out of range", ErrInvalidArgument)
	ErrInvalidName    = fmt.Errorf("%w: name is required", ErrInvalidArgument)
	ErrInvalidRole    = fmt.Errorf("%w: role must be customer or vendor", ErrInvalidArgument)
	ErrMissingVendor  = fmt.Errorf("%w: vendor_name is required for vendors", ErrInvalidArgument)
	ErrInvalidIDValue = fmt.Errorf("%w: identifier must be a positive integer", ErrInvalidArgument)
	ErrMissingCreds   = fmt.Errorf("%w: username and password are required", ErrInvalidArgument)
	ErrLongPassword   = fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidArgument, MaxPasswordBytes)
)

// Kind is the stable, client-facing classification of an error.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindInvalidState       Kind = "invalid_state"
	KindForbidden          Kind = "forbidden"
	KindInvalidArgument    Kind = "invalid_argument"
	KindConflict           Kind = "conflict"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindInternal           Kind = "internal"
)

// KindOf classifies err. Unknown errors are KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrInvalidCredentials):
		return KindInvalidCredentials
	default:
		return KindInternal
	}
}
