package timeline

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDate is returned when a date string is not in YYYY-MM-DD form.
	ErrMalformedDate = errors.New("malformed date")

	// ErrInvertedInterval is returned when an item's start is after its end.
	ErrInvertedInterval = errors.New("start is after end")

	// ErrUnknownGranularity is returned for granularity names other than day, week or month.
	ErrUnknownGranularity = errors.New("unknown granularity")

	// ErrUnknownItem is returned when a transition names an item id that is not in the state.
	ErrUnknownItem = errors.New("unknown item")

	// ErrNoColumns is returned by the inverse mapping when there is nothing rendered.
	ErrNoColumns = errors.New("no columns")

	// ErrInvalidWindow is returned when a window's min date is after its max date.
	ErrInvalidWindow = errors.New("invalid window")
)

// ItemError reports the rejection of a single item.
type ItemError struct {
	ID  int
	Err error
}

// Error implements the error interface.
func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.ID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ItemError) Unwrap() error {
	return e.Err
}
