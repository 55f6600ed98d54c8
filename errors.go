package ssd1322

import "errors"

// ErrHalted is returned by drawing operations after Halt has powered the
// display off. Re-run HardReset and Init to recover.
var ErrHalted = errors.New("ssd1322: halted")

// CommError reports a failed transport write. The controller's address
// pointer and command/data mode are indeterminate afterwards; callers should
// recover with HardReset and Init.
type CommError struct {
	Err error
}

func (e *CommError) Error() string {
	return "ssd1322: transport write failed: " + e.Err.Error()
}

func (e *CommError) Unwrap() error { return e.Err }

// PinError reports a failed GPIO write on the data/command, reset or
// power-enable line.
type PinError struct {
	Pin string
	Err error
}

func (e *PinError) Error() string {
	return "ssd1322: " + e.Pin + " pin write failed: " + e.Err.Error()
}

func (e *PinError) Unwrap() error { return e.Err }
