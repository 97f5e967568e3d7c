package cipher

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter matches any *InvalidParameterError.
	ErrInvalidParameter = errors.New("invalid affine parameter")
	// ErrInvalidKey matches any *InvalidKeyError.
	ErrInvalidKey = errors.New("invalid key")
	// ErrUnknownDirection is returned for a Direction outside the enum.
	ErrUnknownDirection = errors.New("unknown direction")
)

// InvalidParameterError reports an affine multiplier with no inverse mod 26.
type InvalidParameterError struct {
	A int
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("affine a=%d has no inverse mod 26 (valid: %v)", e.A, ValidA())
}

// Is makes errors.Is(err, ErrInvalidParameter) succeed.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// InvalidKeyError reports an empty or too short key.
type InvalidKeyError struct {
	Length int
	Min    int
}

func (e *InvalidKeyError) Error() string {
	if e.Length == 0 {
		return "key must contain at least one letter"
	}
	return fmt.Sprintf("key must have at least %d letters (got %d)", e.Min, e.Length)
}

// Is makes errors.Is(err, ErrInvalidKey) succeed.
func (e *InvalidKeyError) Is(target error) bool {
	return target == ErrInvalidKey
}
