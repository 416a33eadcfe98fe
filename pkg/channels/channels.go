// Package channels holds small generic helpers for channel plumbing between
// real-time callbacks and ordinary goroutines.
package channels

import (
	"errors"
)

var (
	ErrChannelClosed = errors.New("channel closed")
	ErrChannelFull   = errors.New("channel full")
)
