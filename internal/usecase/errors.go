package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrDataNotLoaded is returned by queries issued before the catalog load
	// finished.
	ErrDataNotLoaded = fmt.Errorf("data not loaded yet: %w", ErrDependencyUnavailable)
)
