package async

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrPanic matches every PanicError with errors.Is
var ErrPanic = errors.New("panic")

// PanicError is a recovered panic
type PanicError struct {
	Task  string
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Task, e.Value)
}

func (e *PanicError) Unwrap() error { return ErrPanic }

// Run calls fn and converts a panic into a *PanicError naming task
func Run(task string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Task: task, Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}
