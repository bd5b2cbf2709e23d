// Package pipeline chains intcode machines, so that the outputs of each
// machine become the inputs of the next.
//
// Every machine runs the same program and is seeded with its own phase
// setting. In feedback mode the outputs of the last machine are routed back
// to the first, and the machines are resumed round after round until the
// last machine halts.
package pipeline

import (
	"context"
	"log"

	"github.com/ezrec/icvm/intcode"
)

// CANCEL_TICKS is the number of instructions a machine executes between
// checks for cancellation.
const CANCEL_TICKS = 4096

// Pipeline is a chain of machines.
type Pipeline struct {
	Verbose  bool // If set, logs every stage of every round.
	Feedback bool // If set, the last machine feeds the first.

	Phases   []intcode.Cell     // Phase setting of each machine.
	Machines []*intcode.Machine // Machines, in chain order.

	Rounds int // Rounds executed by the last Run.
}

// New creates a pipeline of machines running program, one per phase.
func New(program intcode.Program, phases []intcode.Cell) (p *Pipeline) {
	p = &Pipeline{
		Phases: phases,
	}

	for range phases {
		p.Machines = append(p.Machines, intcode.NewMachine(program))
	}

	p.Reset()

	return
}

// Reset all machines, and queue each machine's phase setting.
func (p *Pipeline) Reset() {
	for n, m := range p.Machines {
		m.Verbose = p.Verbose
		m.Reset()
		if n < len(p.Phases) {
			m.AddInput(p.Phases[n])
		}
	}
	p.Rounds = 0
}

// Run drives the pipeline with an initial signal to the first machine, and
// returns the final signal from the last machine.
func (p *Pipeline) Run(signal intcode.Cell) (result intcode.Cell, err error) {
	return p.RunContext(context.Background(), signal)
}

// RunContext is Run, stopping with the context error once ctx is done.
// The context is checked before every stage, and every CANCEL_TICKS
// instructions of a running machine.
func (p *Pipeline) RunContext(ctx context.Context, signal intcode.Cell) (result intcode.Cell, err error) {
	if len(p.Machines) == 0 {
		err = topology(ErrEmpty)
		return
	}

	if p.Feedback {
		return p.runFeedback(ctx, signal)
	}

	return p.runChain(ctx, signal)
}

// step runs a machine until it produces an output, needs an input, or
// halts, checking ctx as it goes.
func step(ctx context.Context, m *intcode.Machine) (result intcode.Result, err error) {
	for n := 0; ; n++ {
		if n%CANCEL_TICKS == 0 {
			err = ctx.Err()
			if err != nil {
				return
			}
		}

		result, err = m.Tick()
		if err != nil || result.State != intcode.STATE_RUNNING {
			return
		}
	}
}

// runChain passes the signal once through every machine.
func (p *Pipeline) runChain(ctx context.Context, signal intcode.Cell) (result intcode.Cell, err error) {
	p.Rounds = 1

	value := signal
	for n, m := range p.Machines {
		m.AddInput(value)

		var res intcode.Result
		res, err = step(ctx, m)
		if err != nil {
			err = ErrStage{Index: n, Err: err}
			return
		}

		switch res.State {
		case intcode.STATE_OUTPUT:
			if p.Verbose {
				log.Printf("pipeline: stage %d: %d -> %d", n, value, res.Value)
			}
			value = res.Value
		case intcode.STATE_HALTED:
			err = ErrStage{Index: n, Err: topology(ErrNoOutput)}
			return
		default:
			err = ErrStage{Index: n, Err: topology(ErrStarved)}
			return
		}
	}

	result = value
	return
}

// runStage feeds inputs to a machine, and runs it until it blocks or halts.
func (p *Pipeline) runStage(ctx context.Context, m *intcode.Machine, inputs []intcode.Cell) (outputs []intcode.Cell, err error) {
	m.AddInput(inputs...)

	for {
		var res intcode.Result
		res, err = step(ctx, m)
		if err != nil || res.State != intcode.STATE_OUTPUT {
			return
		}
		outputs = append(outputs, res.Value)
	}
}

// runFeedback resumes the machines in order, round after round, until the
// last machine halts.
func (p *Pipeline) runFeedback(ctx context.Context, signal intcode.Cell) (result intcode.Cell, err error) {
	last := len(p.Machines) - 1

	pending := []intcode.Cell{signal}
	has_result := false

	for round := 1; ; round++ {
		p.Rounds = round
		progress := false

		err = ctx.Err()
		if err != nil {
			return
		}

		for n, m := range p.Machines {
			var outputs []intcode.Cell
			outputs, err = p.runStage(ctx, m, pending)
			if err != nil {
				err = ErrStage{Index: n, Err: err}
				return
			}

			if p.Verbose {
				log.Printf("pipeline: round %d stage %d: %v -> %v (%v)", round, n, pending, outputs, m.State)
			}

			upstream := p.Machines[(n+last)%len(p.Machines)]
			if !m.Halted() && n > 0 && upstream.Halted() {
				err = ErrStage{Index: n, Err: topology(ErrUpstreamHalted)}
				return
			}

			if len(outputs) > 0 {
				progress = true
			}

			if n == last {
				if len(outputs) > 0 {
					result = outputs[len(outputs)-1]
					has_result = true
				}
				if m.Halted() {
					if !has_result {
						err = ErrStage{Index: n, Err: topology(ErrNoOutput)}
					}
					return
				}
			}

			pending = outputs
		}

		if !progress {
			err = topology(ErrStalled)
			return
		}
	}
}
