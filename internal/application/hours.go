package application

import (
	"math"
	"time"
)

// RoundHours rounds an hour figure to two decimal places using
// round-half-to-even, the chosen reading of the reporting contract's
// "round to 2 decimals".
func RoundHours(hours float64) float64 {
	return math.RoundToEven(hours*100) / 100
}

// DateOf truncates an instant to its calendar date in the instant's
// location. The ledger attributes every session to the date of its clock-in
// instant, so a session spanning midnight stays on the day it started.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
