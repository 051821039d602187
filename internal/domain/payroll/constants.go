package payroll

const (
	HalfFirst  = 1
	HalfSecond = 2

	// FirstHalfLastDay closes the first half-month period.
	FirstHalfLastDay = 15
)
