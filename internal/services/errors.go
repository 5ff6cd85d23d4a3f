package services

import (
	"errors"
	"fmt"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrConflict  = errors.New("record conflicts with existing data")
	ErrDuplicate = errors.New("name already in use")

	ErrExportUnavailable = errors.New("export queue is not configured")
)

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

// unknownRef reports a reference to a record that does not exist. It is the
// caller's input that is wrong, so it is a validation error.
func unknownRef(kind, id string) error {
	return fmt.Errorf("%w: unknown %s %q", model.ErrValidation, kind, id)
}
