package domain

import "errors"

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrHoldNotFound         = errors.New("hold not found")
	ErrHoldExpired          = errors.New("hold expired")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidRange         = errors.New("invalid date range")
	ErrInvalidCapacity      = errors.New("invalid total quantity")
	ErrProductNameRequired  = errors.New("product name required")
	ErrInvalidID            = errors.New("invalid id")
)
