// Package bench provides tools for running and summarizing repeated swarm
// trials on the Rastrigin function, as described at
// http://en.wikipedia.org/wiki/Test_functions_for_optimization.
package bench

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/petar/GoLLRB/llrb"
	"github.com/rwcarlsen/pso"
	"github.com/rwcarlsen/pso/config"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Rastrigin is the benchmark definition of the objective in NDim
// dimensions on its customary [-5.12, 5.12] domain.
type Rastrigin struct {
	NDim int
}

func (fn Rastrigin) Name() string { return fmt.Sprintf("Rastrigin_%vD", fn.NDim) }

// Eval returns +Inf for vectors the objective rejects.
func (fn Rastrigin) Eval(x []float64) float64 {
	val, err := pso.Rastrigin(x)
	if err != nil {
		return math.Inf(1)
	}
	return val
}

func (fn Rastrigin) Bounds() (low, up []float64) {
	low = make([]float64, fn.NDim)
	up = make([]float64, fn.NDim)
	for i := range low {
		low[i] = -5.12
		up[i] = 5.12
	}
	return low, up
}

// Optimum returns the global minimum: the origin, with value 0.
func (fn Rastrigin) Optimum() (pos []float64, val float64) {
	return make([]float64, fn.NDim), 0
}

// Result is the outcome of one trial.
type Result struct {
	Seed  int64
	Ticks int
	Val   float64
	Pos   []float64
	// Dist is the euclidean distance from Pos to the global optimum.
	Dist      float64
	Converged bool
}

// Run builds a swarm from cfg seeded with seed and ticks it until the best
// value drops below cfg.Tolerance, cfg.Ticks generations have run or ctx is
// done.  opts are applied after the seeded source, so they may replace it.
func Run(ctx context.Context, cfg *config.Config, seed int64, opts ...pso.Option) (Result, error) {
	opts = append([]pso.Option{pso.WithSource(pso.NewSource(seed))}, opts...)
	s, err := pso.New(cfg.Lower, cfg.Upper, cfg.Dim, cfg.Size, cfg.Inertia, cfg.Cognition, cfg.Social, opts...)
	if err != nil {
		return Result{Seed: seed, Val: math.Inf(1)}, err
	}

	_, val := s.Best()
	for val >= cfg.Tolerance && s.Ticks() < cfg.Ticks {
		if err := ctx.Err(); err != nil {
			return result(s, seed, cfg.Tolerance), err
		}
		s.Tick()
		_, val = s.Best()
	}
	return result(s, seed, cfg.Tolerance), nil
}

func result(s *pso.Swarm, seed int64, tol float64) Result {
	pos, val := s.Best()
	opt, _ := Rastrigin{NDim: s.Dim()}.Optimum()
	return Result{
		Seed:      seed,
		Ticks:     s.Ticks(),
		Val:       val,
		Pos:       pos,
		Dist:      floats.Distance(pos, opt, 2),
		Converged: val < tol,
	}
}

type item Result

func (r item) Less(than llrb.Item) bool {
	o := than.(item)
	if r.Val != o.Val {
		return r.Val < o.Val
	}
	return r.Seed < o.Seed
}

// Summary collects trial results ordered from best to worst value.  It is
// safe for concurrent use.
type Summary struct {
	mu   sync.Mutex
	tree *llrb.LLRB
}

func NewSummary() *Summary {
	return &Summary{tree: llrb.New()}
}

func (s *Summary) Add(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.InsertNoReplace(item(r))
}

func (s *Summary) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Len()
}

// Best returns the result with the lowest value.  ok is false if the
// summary is empty.
func (s *Summary) Best() (r Result, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree.Len() == 0 {
		return Result{}, false
	}
	return Result(s.tree.Min().(item)), true
}

func (s *Summary) Worst() (r Result, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree.Len() == 0 {
		return Result{}, false
	}
	return Result(s.tree.Max().(item)), true
}

// Median returns the middle result, the lower of the two middle results
// for an even count.
func (s *Summary) Median() (r Result, ok bool) {
	all := s.Results()
	if len(all) == 0 {
		return Result{}, false
	}
	return all[(len(all)-1)/2], true
}

// Results returns all results from best to worst.
func (s *Summary) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs := make([]Result, 0, s.tree.Len())
	if s.tree.Len() == 0 {
		return rs
	}
	s.tree.AscendGreaterOrEqual(s.tree.Min(), func(i llrb.Item) bool {
		rs = append(rs, Result(i.(item)))
		return true
	})
	return rs
}

// Mean and StdDev summarize the best values of all results.  StdDev is 0
// for fewer than two results.
func (s *Summary) Mean() float64 {
	vals := s.vals()
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}

func (s *Summary) StdDev() float64 {
	vals := s.vals()
	if len(vals) < 2 {
		return 0
	}
	return stat.StdDev(vals, nil)
}

// SuccessRate is the fraction of converged results.
func (s *Summary) SuccessRate() float64 {
	all := s.Results()
	if len(all) == 0 {
		return 0
	}
	n := 0
	for _, r := range all {
		if r.Converged {
			n++
		}
	}
	return float64(n) / float64(len(all))
}

func (s *Summary) vals() []float64 {
	all := s.Results()
	vals := make([]float64, len(all))
	for i, r := range all {
		vals[i] = r.Val
	}
	return vals
}
