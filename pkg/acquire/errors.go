package acquire

import (
	"errors"
	"fmt"
)

var (
	// ErrInterrupted is returned when the user stops the program before polling started.
	ErrInterrupted = errors.New("interrupted")
	// ErrNotConnected is returned by Run when Connect has not succeeded.
	ErrNotConnected = errors.New("not connected")
)

// ConnectionError reports a device that could not be opened.
type ConnectionError struct {
	Port string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not open serial port %s: %v", e.Port, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IOError reports a device failure while polling.
type IOError struct {
	Port string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("serial port %s failed: %v", e.Port, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
