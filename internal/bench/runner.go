package bench

import (
	"runtime"
	"time"

	"github.com/jamiealquiza/tachymeter"

	"github.com/neoflux-dev/neoflux/pkg/neoflux"
)

// Result holds the measured latencies for one scenario.
type Result struct {
	Scenario   Scenario
	Iterations int
	Nodes      int

	Avg time.Duration
	Min time.Duration
	P75 time.Duration
	P99 time.Duration
	Max time.Duration

	// HeapDelta is the heap growth observed while building the graph.
	HeapDelta uint64
}

// Run builds the scenario's graph, drives iterations writes through it,
// and samples the per-write latency.
func Run(s Scenario, iterations int) (Result, error) {
	if err := s.validate(); err != nil {
		return Result{}, err
	}
	if s.Iterations > 0 {
		iterations = s.Iterations
	}

	tach := tachymeter.New(&tachymeter.Config{Size: iterations})

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	res := neoflux.CreateRoot(func(dispose func()) Result {
		defer dispose()

		src, nodes := build(s)

		runtime.ReadMemStats(&after)

		for i := 0; i < iterations; i++ {
			start := time.Now()
			src.Set(src.Peek() + 1)
			tach.AddTime(time.Since(start))
		}

		calc := tach.Calc()
		return Result{
			Scenario:   s,
			Iterations: iterations,
			Nodes:      nodes,
			Avg:        calc.Time.Avg,
			Min:        calc.Time.Min,
			P75:        calc.Time.P75,
			P99:        calc.Time.P99,
			Max:        calc.Time.Max,
		}
	})

	if after.HeapAlloc > before.HeapAlloc {
		res.HeapDelta = after.HeapAlloc - before.HeapAlloc
	}
	return res, nil
}

// RunSuite runs every scenario in order.
func RunSuite(suite []Scenario, iterations int) ([]Result, error) {
	results := make([]Result, 0, len(suite))
	for _, s := range suite {
		r, err := Run(s, iterations)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// build constructs the scenario's graph and returns the source signal
// plus the total node count (signals, memos, effects).
func build(s Scenario) (*neoflux.Signal[int], int) {
	src := neoflux.NewSignal(1)
	nodes := 1

	switch s.Shape {
	case ShapePropagate:
		for i := 0; i < s.Width; i++ {
			var last neoflux.Readable[int] = src
			for j := 0; j < s.Height; j++ {
				prev := last
				last = neoflux.NewMemo(func() int { return prev.Get() + 1 })
				nodes++
			}
			tail := last
			neoflux.CreateEffect(func() neoflux.Cleanup {
				tail.Get()
				return nil
			})
			nodes++
		}

	case ShapeDiamond:
		for i := 0; i < s.Width; i++ {
			left := neoflux.NewMemo(func() int { return src.Get() * 2 })
			right := neoflux.NewMemo(func() int { return src.Get() + 1 })
			join := neoflux.NewMemo(func() int { return left.Get() + right.Get() })
			neoflux.CreateEffect(func() neoflux.Cleanup {
				join.Get()
				return nil
			})
			nodes += 4
		}

	case ShapeDense:
		layer := []neoflux.Readable[int]{src}
		for j := 0; j < s.Height; j++ {
			prev := layer
			next := make([]neoflux.Readable[int], 0, s.Width)
			for i := 0; i < s.Width; i++ {
				next = append(next, neoflux.NewMemo(func() int {
					sum := 0
					for _, m := range prev {
						sum += m.Get()
					}
					return sum
				}))
				nodes++
			}
			layer = next
		}
		for _, tail := range layer {
			tail := tail
			neoflux.CreateEffect(func() neoflux.Cleanup {
				tail.Get()
				return nil
			})
			nodes++
		}
	}

	return src, nodes
}
