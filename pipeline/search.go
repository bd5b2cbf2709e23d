package pipeline

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/icvm/intcode"
	"github.com/ezrec/icvm/internal"
)

// Best is the outcome of a phase search.
type Best struct {
	Signal intcode.Cell   // Largest final signal.
	Phases []intcode.Cell // Phase order that produced Signal.
}

// Search runs a pipeline for every ordering of phases, and returns the
// ordering that produces the largest final signal. Ties keep the ordering
// that comes first. Orderings are run concurrently, each on its own
// machines; the first error cancels the search.
func Search(ctx context.Context, program intcode.Program, phases []intcode.Cell, feedback bool, signal intcode.Cell) (best Best, err error) {
	if len(phases) == 0 {
		err = topology(ErrEmpty)
		return
	}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	var mutex sync.Mutex
	best_index := -1

	index := 0
	for order := range internal.Permutations(phases) {
		if gctx.Err() != nil {
			break
		}

		n := index
		index++

		group.Go(func() (err error) {
			if err = gctx.Err(); err != nil {
				return
			}

			p := New(program, order)
			p.Feedback = feedback
			value, err := p.RunContext(gctx, signal)
			if err != nil {
				return ErrPhases{Phases: order, Err: err}
			}

			mutex.Lock()
			defer mutex.Unlock()
			if best_index < 0 || value > best.Signal || (value == best.Signal && n < best_index) {
				best = Best{Signal: value, Phases: order}
				best_index = n
			}

			return
		})
	}

	err = group.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		best = Best{}
	}

	return
}
