package domain

import "errors"

// ErrInvalidDays is returned when a plan or window horizon is outside the allowed range.
var ErrInvalidDays = errors.New("invalid number of days")

// ErrInvalidStrategy is returned when a strategy table is malformed.
var ErrInvalidStrategy = errors.New("invalid content strategy")

// ErrEmptyBatch is returned when a compliance report is requested for no texts.
var ErrEmptyBatch = errors.New("empty batch")

// ErrNotFound is returned when a stored content item does not exist.
var ErrNotFound = errors.New("entity not found")

// ErrAlreadyExists is returned when a content item id is already stored.
var ErrAlreadyExists = errors.New("entity already exists")

// ErrInvalidStatus is returned for unknown statuses and disallowed transitions.
var ErrInvalidStatus = errors.New("invalid status transition")
