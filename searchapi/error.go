package searchapi

import "fmt"

// Error is the single error type search calls return. StatusCode is set only
// when the server actually responded; a request that never completed (DNS
// failure, timeout, connection refused) carries StatusCode 0 and wraps the
// transport cause.
type Error struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("search API: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("search API: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}
