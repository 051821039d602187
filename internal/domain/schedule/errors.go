package schedule

import "errors"

var (
	ErrSourceUnavailable = errors.New("schedule source unavailable")
	ErrEmptyTable        = errors.New("schedule table is empty")
	ErrNotLoaded         = errors.New("schedule not loaded")
)
