package frontend

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoFileSelected is reported when a file selection was cancelled.
var ErrNoFileSelected = errors.New("no file selected")

// LoadError is reported when a selected program could not be staged. No
// session is started after a LoadError.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %q: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// EngineFault is returned from a frame callback when the engine failed while
// stepping. The session that produced it is stopped.
type EngineFault struct {
	Frame uint64
	Cycle int
	Err   error
}

func (e *EngineFault) Error() string {
	return fmt.Sprintf("engine fault in frame %d, cycle %d: %v", e.Frame, e.Cycle, e.Err)
}

func (e *EngineFault) Unwrap() error { return e.Err }

// Notifier shows a user-visible notice for recoverable conditions.
type Notifier interface {
	Notify(err error)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(err error)

func (f NotifierFunc) Notify(err error) { f(err) }
