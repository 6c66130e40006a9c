package pathify

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrBadBounds is returned when the search bounds are invalid.
var ErrBadBounds = errors.New("bad search bounds")

// MaxEvaluations is the maximum number of threshold pairs that a single search may evaluate.
var MaxEvaluations = 1_000_000

// SearchBounds are the bounds of the grid of (a_floor, d_floor) pairs that is swept by Search. AMargin and DMargin are added to the winning pair.
type SearchBounds struct {
	ACeiling, AStep  float64
	DCeiling, DStep  float64
	AMargin, DMargin float64
}

// NewSearchBounds returns search bounds with margins equal to the steps.
func NewSearchBounds(aCeiling, aStep, dCeiling, dStep float64) SearchBounds {
	return SearchBounds{
		ACeiling: aCeiling,
		AStep:    aStep,
		DCeiling: dCeiling,
		DStep:    dStep,
		AMargin:  aStep,
		DMargin:  dStep,
	}
}

// Evaluations returns the number of threshold pairs in the grid.
func (b SearchBounds) Evaluations() float64 {
	return (math.Floor(b.ACeiling/b.AStep) + 1.0) * (math.Floor(b.DCeiling/b.DStep) + 1.0)
}

// Validate returns an error wrapping ErrBadBounds if the steps are not positive, the ceilings or margins are negative, any value is not finite, or the grid has more than MaxEvaluations points.
func (b SearchBounds) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"a_ceiling", b.ACeiling},
		{"a_step", b.AStep},
		{"d_ceiling", b.DCeiling},
		{"d_step", b.DStep},
		{"a_margin", b.AMargin},
		{"d_margin", b.DMargin},
	} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) || v.val < 0.0 {
			return fmt.Errorf("%w: %s=%g must be finite and non-negative", ErrBadBounds, v.name, v.val)
		}
	}
	if b.AStep == 0.0 || b.DStep == 0.0 {
		return fmt.Errorf("%w: steps must be positive", ErrBadBounds)
	} else if n := b.Evaluations(); float64(MaxEvaluations) < n {
		return fmt.Errorf("%w: %g evaluations exceed the maximum of %d", ErrBadBounds, n, MaxEvaluations)
	}
	return nil
}

// SearchResult is the outcome of a threshold search. If Found is false, no pair in the grid kept the points within the budget and Policy is the zero value.
type SearchResult struct {
	Name        string
	Policy      ADFloor
	Found       bool
	Count       int // number of points after reduction with the pair that was found
	Evaluations int
	Err         error
}

func (r SearchResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %v", r.Name, r.Err)
	} else if !r.Found {
		return fmt.Sprintf("%s: infeasible after %d evaluations", r.Name, r.Evaluations)
	}
	return fmt.Sprintf("%s: %v with %d points after %d evaluations", r.Name, r.Policy, r.Count, r.Evaluations)
}

// Search finds the pair (af,df) on the grid af = i*AStep ≤ ACeiling and df = j*DStep ≤ DCeiling that minimizes af+df, such that reducing raw with ADFloor{af+AStep, df+DStep} keeps at most maxPoints points. On ties the pair with the smallest af wins. The returned policy is the winning pair plus the margins. If no pair is feasible, Found is false and the error is nil.
//
// The sweep is in row-major order over af and stops early when no better pair can be found. The context is checked once per row.
func Search(ctx context.Context, raw []Point, bounds SearchBounds, maxPoints int) (SearchResult, error) {
	if err := bounds.Validate(); err != nil {
		return SearchResult{}, err
	} else if maxPoints <= 0 {
		return SearchResult{}, fmt.Errorf("%w: max points must be positive", ErrBudget)
	}

	pts := Dedup(raw)
	res := SearchResult{}
	best := math.Inf(1)
	var bestA, bestD float64
	for i := 0; ; i++ {
		af := float64(i) * bounds.AStep
		if bounds.ACeiling < af || cmp.Compare(best, af) <= 0 {
			break
		} else if err := ctx.Err(); err != nil {
			return res, err
		}

		for j := 0; ; j++ {
			df := float64(j) * bounds.DStep
			if bounds.DCeiling < df || cmp.Compare(best, af+df) <= 0 {
				break
			}

			res.Evaluations++
			n := len(cornerFilter(pts, af+bounds.AStep, df+bounds.DStep))
			if n <= maxPoints {
				best, bestA, bestD = af+df, af, df
				res.Found = true
				res.Count = n
				break // larger df in this row only increases af+df
			}
		}
	}
	if res.Found {
		res.Policy = ADFloor{
			AFloor: bestA + bounds.AMargin,
			DFloor: bestD + bounds.DMargin,
		}
	}
	return res, nil
}

// Target is an independent unit of work for SearchAll.
type Target struct {
	Name      string
	Points    []Point
	Bounds    SearchBounds
	MaxPoints int
}

// SearchAll runs Search for every target concurrently using at most workers goroutines, or runtime.GOMAXPROCS(0) if workers is not positive. Results are returned in the order of targets. Failures of individual targets are stored in their result's Err, the returned error is non-nil only when the context is cancelled.
func SearchAll(ctx context.Context, targets []Target, workers int) ([]SearchResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]SearchResult, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, target := range targets {
		g.Go(func() error {
			res, err := Search(ctx, target.Points, target.Bounds, target.MaxPoints)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			res.Name = target.Name
			res.Err = err
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
