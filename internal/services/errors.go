// internal/services/errors.go
package services

import (
	"errors"
	"strings"
)

// Error taxonomy for the catalog core. Handlers translate these into HTTP
// responses; everything else is treated as an internal error and kept out of
// user-facing messages.

// Validation errors: operation aborted before any write.
var (
	ErrInvalidAttributeName = errors.New("invalid attribute name")
	ErrEmptyOptionSet       = errors.New("select attribute needs at least one option")
	ErrNotASelectAttribute  = errors.New("attribute is not a select attribute")
	ErrProtectedColumn      = errors.New("column visibility is not configurable")
	ErrEmptyName            = errors.New("product name must not be empty")
	ErrInvalidPrice         = errors.New("price must be a number")
	ErrInvalidNumericValue  = errors.New("value must be numeric")
	ErrInvalidOption        = errors.New("value is not an allowed option")
	ErrNegativeQuantity     = errors.New("quantity must not be negative")
)

// Not-found errors: reported to the caller, no state change.
var (
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrEntryNotFound     = errors.New("inventory entry not found")
)

// Constraint violations surfaced from storage, translated at the service
// boundary.
var (
	ErrDuplicateAttribute = errors.New("attribute already exists")
	ErrDuplicateLocation  = errors.New("inventory entry for this location already exists")
)

func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidAttributeName, ErrEmptyOptionSet, ErrNotASelectAttribute,
		ErrProtectedColumn, ErrEmptyName, ErrInvalidPrice,
		ErrInvalidNumericValue, ErrInvalidOption, ErrNegativeQuantity,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrAttributeNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrEntryNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateAttribute) ||
		errors.Is(err, ErrDuplicateLocation)
}

// isUniqueViolation detects SQLite unique-constraint failures. The driver
// exposes them only through the message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation detects SQLite foreign-key failures.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
