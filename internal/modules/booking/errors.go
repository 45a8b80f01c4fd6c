package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("booking not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrForbidden               = errors.New("forbidden")
	ErrBanned                  = errors.New("user is banned")
	ErrTierDenied              = errors.New("access tier required")
	ErrConflict                = errors.New("booking conflict, try again")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// ValidationError carries per-field messages. It matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NoAvailableItemError means every item of TypeID is withdrawn or already
// booked for the requested interval.
type NoAvailableItemError struct {
	TypeID int64
}

func (e *NoAvailableItemError) Error() string {
	return fmt.Sprintf("no available item for equipment type %d", e.TypeID)
}

// TierDeniedError names the type whose tier the requester lacks.
type TierDeniedError struct {
	TypeID   int64
	TypeName string
}

func (e *TierDeniedError) Error() string {
	return fmt.Sprintf("equipment %q (type %d) requires Ronin access", e.TypeName, e.TypeID)
}

func (e *TierDeniedError) Is(target error) bool { return target == ErrTierDenied }
