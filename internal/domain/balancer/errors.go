package balancer

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidPoolSize = errors.New("invalid pool size")
	ErrUnknownStrategy = errors.New("unknown balancing strategy")
)

// PoolSizeError reports a pool whose length does not match teams × players per team.
type PoolSizeError struct {
	Required int
	Actual   int
}

func (e *PoolSizeError) Error() string {
	return fmt.Sprintf("%s: need exactly %d players, got %d", ErrInvalidPoolSize, e.Required, e.Actual)
}

// Unwrap lets errors.Is match ErrInvalidPoolSize.
func (e *PoolSizeError) Unwrap() error { return ErrInvalidPoolSize }
