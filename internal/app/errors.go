package app

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuit is returned by the poll loop for a normal exit.
	ErrQuit = errors.New("quit requested")

	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoTerminal means stdin or stdout is not a terminal.
	ErrNoTerminal = errors.New("not a terminal")
)

// DocumentError reports a failed document load or save.
type DocumentError struct {
	Op    string // "open" or "save"
	Path  string
	Stage string // step that failed, e.g. "read", "rename"; may be empty
	Err   error
}

func (e *DocumentError) Error() string {
	if e == nil {
		return ""
	}
	parts := []string{e.Op}
	if e.Path != "" {
		parts[0] += " " + e.Path
	}
	if e.Stage != "" {
		parts = append(parts, e.Stage)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *DocumentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func docError(op, path, stage string, err error) *DocumentError {
	return &DocumentError{Op: op, Path: path, Stage: stage, Err: err}
}

// ComponentError reports a component that could not be built or started.
type ComponentError struct {
	Component string // "config", "keymap", "backend", "log"
	Action    string
	Err       error
}

// NewComponentError creates a new ComponentError.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{Component: component, Action: action, Err: err}
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Component
	if e.Action != "" {
		msg += ": " + e.Action
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RecoveredPanicError carries a panic out of the poll loop so the terminal
// is restored before it is reported.
type RecoveredPanicError struct {
	Value any
	Stack string
}

// NewRecoveredPanicError creates a new RecoveredPanicError.
func NewRecoveredPanicError(value any, stack string) *RecoveredPanicError {
	return &RecoveredPanicError{Value: value, Stack: stack}
}

func (e *RecoveredPanicError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("panic: %v", e.Value)
	if e.Stack != "" {
		msg += "\n" + e.Stack
	}
	return msg
}
