package domain

import "errors"

var (
	ErrInvalidID    = errors.New("invalid id")
	ErrInvalidLabel = errors.New("invalid label")
	ErrInvalidTitle = errors.New("invalid title")
	ErrDuplicateID  = errors.New("duplicate id")
)
