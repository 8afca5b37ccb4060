package app

import "errors"

// Application errors.
var (
	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNotRunning indicates the application is not running.
	ErrNotRunning = errors.New("application not running")

	// ErrComponentNotAvailable indicates a required platform component was
	// never attached.
	ErrComponentNotAvailable = errors.New("component not available")
)

// InitError represents an initialization failure.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// ComponentError represents a runtime failure in a specific component.
type ComponentError struct {
	Component string
	Action    string
	Err       error
}

func (e *ComponentError) Error() string {
	if e.Err != nil {
		return e.Component + ": " + e.Action + ": " + e.Err.Error()
	}
	return e.Component + ": " + e.Action
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}
