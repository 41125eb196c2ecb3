package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrForbidden        = errors.New("forbidden")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// StoreError is a failed storage call. It matches ErrStoreUnavailable and
// unwraps to the driver error, so context cancellation stays visible.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%v: %v", ErrStoreUnavailable, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStoreUnavailable }

// PartialAckError reports an acknowledge-all run in which some writes failed.
// The records that were written are not rolled back.
type PartialAckError struct {
	Acknowledged int
	Failed       []string
	Err          error
}

func (e *PartialAckError) Error() string {
	return fmt.Sprintf("acknowledged %d alerts, failed for [%s]: %v",
		e.Acknowledged, strings.Join(e.Failed, ", "), e.Err)
}

func (e *PartialAckError) Unwrap() error { return e.Err }
