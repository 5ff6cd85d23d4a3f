package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation marks input rejected before it reaches the store.
var ErrValidation = errors.New("validation failed")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Ptr returns a pointer to v; handy for optional fields and patches.
func Ptr[T any](v T) *T {
	return &v
}
