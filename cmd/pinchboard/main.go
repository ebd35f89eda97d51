package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess  = 0 // Command completed
	ExitUpstream = 1 // The PinchBench API could not be reached or answered with an error
	ExitError    = 2 // Usage or configuration error
)

// UpstreamError indicates that the command was valid but the data it needs
// could not be loaded from the API.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// couldntLoad wraps err as an UpstreamError with a "couldn't load" message.
func couldntLoad(what string, err error) error {
	return &UpstreamError{Message: "couldn't load " + what, Err: err}
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return ExitUpstream
	}
	return ExitError
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
