package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrOpen = errors.New("open database failed")
)
