package engine

import (
	"fmt"
	"strings"
	"time"
)

// MissingDataError reports a sheet missing required columns. It is
// raised before any processing starts.
type MissingDataError struct {
	Sheet   string
	Columns []string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("sheet %q is missing required columns: %s", e.Sheet, strings.Join(e.Columns, ", "))
}

// CancelledError reports a run stopped by an explicit cancel.
type CancelledError struct {
	Stage Stage
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("run cancelled during %s", e.Stage)
}

// TimeoutError reports a run that exceeded its deadline.
type TimeoutError struct {
	Stage Stage
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("run exceeded %s during %s", e.Limit, e.Stage)
}

// UnexpectedError wraps an internal failure with the stage it happened in.
type UnexpectedError struct {
	Stage Stage
	Err   error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected failure during %s: %v", e.Stage, e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }
