package emulator

import (
	"errors"

	"github.com/ezrec/icvm/translate"
)

var f = translate.From

var (
	ErrInputExhausted = errors.New(f("tape input exhausted"))
	ErrTapeOutput     = errors.New(f("tape output missing"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc  int
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc %d %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrTapeValue is a tape input word that is not an integer.
type ErrTapeValue string

func (err ErrTapeValue) Error() string {
	return f("tape value %q invalid", string(err))
}
