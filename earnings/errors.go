/*
errors.go - Validation errors for the engine command surface

PURPOSE:
  The engine has no fatal errors: persistence failures are swallowed and
  logged, calendar math falls back to defaults, and zero targets degrade to
  zero progress. What remains is command validation, rejected at the entry
  point before any state is mutated.

USAGE:
  Callers (e.g. the API layer) classify with errors.Is:

    if errors.Is(err, earnings.ErrInvalidIncome) { ... 400 ... }
*/
package earnings

import "errors"

var (
	// ErrInvalidIncome is returned when setup is attempted with a
	// non-positive monthly income.
	ErrInvalidIncome = errors.New("monthly income must be positive")

	// ErrInvalidPolicy is returned for an unknown calculation policy.
	ErrInvalidPolicy = errors.New("unknown calculation policy")

	// ErrNegativeAmount is returned when a manual update carries a negative
	// amount.
	ErrNegativeAmount = errors.New("earnings amount must not be negative")

	// ErrInvalidWorkingHours is returned when a shift boundary is outside
	// the minutes of a day.
	ErrInvalidWorkingHours = errors.New("working hours out of range")

	// ErrInvalidPaydayDay is returned when the payday day-of-month is
	// outside [1, 31].
	ErrInvalidPaydayDay = errors.New("payday day must be between 1 and 31")

	// ErrNotConfigured is returned by commands that require a completed
	// profile setup.
	ErrNotConfigured = errors.New("profile is not set up")
)

// IsValidationError reports whether err was rejected at the command boundary
// (client error) as opposed to an internal condition.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidIncome) ||
		errors.Is(err, ErrInvalidPolicy) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrInvalidWorkingHours) ||
		errors.Is(err, ErrInvalidPaydayDay) ||
		errors.Is(err, ErrNotConfigured)
}
