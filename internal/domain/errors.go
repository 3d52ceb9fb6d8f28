package domain

import "errors"

// Domain errors
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrDuplicateSKU         = errors.New("product with this SKU already exists")
	ErrChannelNotFound      = errors.New("channel not found")
	ErrDuplicateChannelName = errors.New("channel with this name already exists")
	ErrInventoryNotFound    = errors.New("inventory record not found")
	ErrInvalidChannelType   = errors.New("invalid channel type")
	ErrInvalidMovementType  = errors.New("invalid movement type")
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrChannelNotActive     = errors.New("channel is not active")
	ErrSyncInProgress       = errors.New("sync already in progress")
	ErrMissingCredentials   = errors.New("channel credentials are required")
)
