package payroll

import "errors"

var (
	ErrInvalidPeriod = errors.New("payroll period end is before start")
	ErrInvalidHalf   = errors.New("half must be 1 or 2")
	ErrInvalidMonth  = errors.New("month must be between 1 and 12")
)
