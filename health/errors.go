package health

import "errors"

var (
	// ErrCheckFailed indicates a component reported itself unhealthy.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout indicates a check did not finish within the
	// aggregator's timeout.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckerNotFound indicates no checker is registered under the
	// requested name.
	ErrCheckerNotFound = errors.New("health: checker not found")

	// ErrNoCheckers indicates the aggregator has nothing registered.
	ErrNoCheckers = errors.New("health: no checkers registered")
)
