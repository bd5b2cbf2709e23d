package pipeline

import (
	"errors"

	"github.com/ezrec/icvm/intcode"
	"github.com/ezrec/icvm/translate"
)

var f = translate.From

var (
	// Pipeline topology errors
	ErrTopology       = errors.New(f("pipeline topology"))
	ErrEmpty          = errors.New(f("no machines"))
	ErrStarved        = errors.New(f("machine needs input"))
	ErrUpstreamHalted = errors.New(f("upstream machine halted"))
	ErrNoOutput       = errors.New(f("machine halted without output"))
	ErrStalled        = errors.New(f("no machine produced output"))

	// Configuration errors
	ErrConfigProgram   = errors.New(f("config: program missing"))
	ErrConfigPhases    = errors.New(f("config: phases missing"))
	ErrConfigDuplicate = errors.New(f("config: search phases must be unique"))
)

// topology returns a topology error with detail.
func topology(detail error) error {
	return errors.Join(ErrTopology, detail)
}

// ErrStage locates an error in one machine of a pipeline.
type ErrStage struct {
	Index int
	Err   error
}

func (err ErrStage) Error() string {
	return f("stage %d: %v", err.Index, err.Err)
}

func (err ErrStage) Unwrap() error {
	return err.Err
}

// ErrPhases locates an error in the pipeline for one phase order.
type ErrPhases struct {
	Phases []intcode.Cell
	Err    error
}

func (err ErrPhases) Error() string {
	return f("phases %v: %v", err.Phases, err.Err)
}

func (err ErrPhases) Unwrap() error {
	return err.Err
}
