package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is the storage-agnostic not-found error. The postgres
// implementation maps gorm.ErrRecordNotFound onto it; the memory
// implementation returns it directly.
var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err represents a missing record for any
// backend.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
