package services

import "errors"

// Sentinel errors translated to HTTP statuses at the handler boundary.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrAlreadyPurchased = errors.New("already purchased")
	ErrOrderNotFound    = errors.New("order not found")
)
