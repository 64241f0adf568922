// Package optim searches parameter grids for the run that minimizes a metric.
package optim

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/san-kum/pushcart/internal/experiment"
)

// Point is one assignment of grid parameters.
type Point map[string]float64

type GridSearch struct {
	// Workers bounds how many experiments run at once; <= 0 means NumCPU.
	Workers int

	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d params but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("param %s: empty range", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// points enumerates the grid with the last parameter varying fastest.
func (g *GridSearch) points() []Point {
	out := make([]Point, 0, g.Size())
	idx := make([]int, len(g.ranges))
	for {
		p := make(Point, len(g.paramNames))
		for i, name := range g.paramNames {
			p[name] = g.ranges[i][idx[i]]
		}
		out = append(out, p)

		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(g.ranges[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}

type evaluation struct {
	val float64
	ok  bool
}

// Search runs an experiment per grid point, fanned out over Workers
// goroutines, and returns the point with the smallest value of metric. Ties
// go to the earlier point. Points whose experiment fails to build or run are
// skipped; cancellation stops the search. build must be safe for concurrent
// use.
func (g *GridSearch) Search(
	ctx context.Context,
	build func(p Point) (*experiment.Experiment, error),
	metric string,
) (Point, float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, math.Inf(1), err
	}

	points := g.points()
	evals := make([]evaluation, len(points))

	workers := g.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(points) {
		workers = len(points)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				evals[i] = evaluate(ctx, build, points[i], metric)
			}
		}()
	}

dispatch:
	for i := range points {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, math.Inf(1), err
	}

	best := math.Inf(1)
	var bestPoint Point
	for i, e := range evals {
		if e.ok && e.val < best {
			best, bestPoint = e.val, points[i]
		}
	}
	if bestPoint == nil {
		return nil, best, fmt.Errorf("metric %q: no grid point produced a value", metric)
	}
	return bestPoint, best, nil
}

func evaluate(ctx context.Context, build func(Point) (*experiment.Experiment, error), p Point, metric string) evaluation {
	if ctx.Err() != nil {
		return evaluation{}
	}
	exp, err := build(p)
	if err != nil {
		return evaluation{}
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return evaluation{}
	}
	val, ok := result.Metrics[metric]
	return evaluation{val: val, ok: ok}
}
