package process

import "errors"

// Error taxonomy shared by the registry, the loader and the scheduling engine.
// Callers match with errors.Is; producers wrap with context.
var (
	ErrEmptyInput       = errors.New("empty input")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrCapacityExceeded = errors.New("capacity exceeded")
)
