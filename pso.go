// Package pso implements a particle swarm optimizer that minimizes the
// Rastrigin function over a continuous, unbounded search space.
//
// A Swarm is built once with New and then advanced one generation at a time
// with Tick.  Particle positions are exposed without copying through
// Positions, which stays valid until the next call to Tick.  All particle
// data is stored flat and particle-major: particle i occupies indices
// [i*dim, (i+1)*dim) of every per-particle slice.
package pso

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Defaults used by the driver and benchmarks when no hyperparameters are
// given.
const (
	DefaultInertia   = 0.5
	DefaultCognition = 0.5
	DefaultSocial    = 0.5
)

type Option func(*Swarm)

// WithSource sets the random source used for initialization and for the
// per-dimension draws of every tick.  Pass a seeded source for
// reproducible runs.
func WithSource(src Source) Option {
	return func(s *Swarm) {
		s.src = src
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Swarm) {
		s.notify = n
	}
}

// WithRecorder records the initial state and every subsequent tick to h.
func WithRecorder(h *History) Option {
	return func(s *Swarm) {
		s.rec = h
	}
}

type Swarm struct {
	size int
	dim  int
	// x, v and p hold position, velocity and personal best for every
	// particle, particle-major.
	x []float64
	v []float64
	p []float64
	// g is the best position found by any particle so far.
	g    []float64
	gval float64

	w  float64 // inertia
	cp float64 // personal best attraction
	cg float64 // global best attraction

	src    Source
	notify Notifier
	rec    *History
	ticks  int
}

// New creates a swarm of size particles in dim dimensions.  Positions are
// drawn uniformly from [lower, upper] in every dimension and velocities
// from [-(upper-lower), upper-lower].  Each particle's personal best starts
// at its own position and the global best is the first particle with the
// lowest objective value.  w, cp and cg are the inertia, personal best and
// global best coefficients; they are conventionally in [0,1] but are not
// checked.
func New(lower, upper float64, dim, size int, w, cp, cg float64, opts ...Option) (*Swarm, error) {
	if !(lower < upper) {
		return nil, fmt.Errorf("lower bound %v not below upper bound %v: %w", lower, upper, ErrInvalidConfiguration)
	} else if dim <= 0 {
		return nil, fmt.Errorf("dimension %v must be positive: %w", dim, ErrInvalidConfiguration)
	} else if size <= 0 {
		return nil, fmt.Errorf("swarm size %v must be positive: %w", size, ErrInvalidConfiguration)
	}

	s := &Swarm{
		size: size,
		dim:  dim,
		w:    w,
		cp:   cp,
		cg:   cg,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		s.src = NewSource(0)
	}

	n := size * dim
	s.x = make([]float64, n)
	for i := range s.x {
		s.x[i] = uniformClosed(s.src, lower, upper)
	}
	vmax := upper - lower
	s.v = make([]float64, n)
	for i := range s.v {
		s.v[i] = uniformClosed(s.src, -vmax, vmax)
	}
	s.p = make([]float64, n)
	copy(s.p, s.x)

	s.g = make([]float64, dim)
	copy(s.g, s.x[:dim])
	for i := 0; i < size; i++ {
		if rastrigin(s.pos(i)) < rastrigin(s.g) {
			copy(s.g, s.pos(i))
		}
	}
	s.gval = rastrigin(s.g)

	if s.rec != nil {
		if err := s.rec.Record(s); err != nil {
			s.emit(Event{Kind: RecordFailed, Msg: err.Error()})
		}
	}
	return s, nil
}

// Tick advances the swarm by one generation.  Particles are visited in
// index order and each particle's dimensions in order.  The global best is
// updated in place as soon as a particle improves on it, so particles later
// in the same pass are already pulled toward the new best.  Positions are
// never clamped to the initial bounds.
func (s *Swarm) Tick() {
	improved := false
	for i := 0; i < s.size; i++ {
		for d := 0; d < s.dim; d++ {
			// rp and rg MUST be drawn per dimension, rp first.
			rp := s.src.Float64()
			rg := s.src.Float64()
			idx := i*s.dim + d
			s.v[idx] = s.w*s.v[idx] +
				s.cp*rp*(s.p[idx]-s.x[idx]) +
				s.cg*rg*(s.g[d]-s.x[idx])
			s.x[idx] += s.v[idx]
		}

		// g can only improve on a personal best that just improved: every
		// other p_i was already >= g.
		pos, best := s.pos(i), s.best(i)
		if rastrigin(pos) < rastrigin(best) {
			copy(best, pos)
			if rastrigin(best) < rastrigin(s.g) {
				copy(s.g, best)
				improved = true
			}
		}
	}
	s.ticks++

	if improved {
		s.gval = rastrigin(s.g)
		s.emit(Event{Kind: GlobalBestImproved, Tick: s.ticks, Value: s.gval})
	}
	if !finite(s.x) || !finite(s.v) {
		s.emit(Event{Kind: NumericOverflow, Tick: s.ticks, Msg: "non-finite position or velocity"})
	}
	if s.rec != nil {
		if err := s.rec.Record(s); err != nil {
			s.emit(Event{Kind: RecordFailed, Tick: s.ticks, Msg: err.Error()})
		}
	}
}

// Run calls Tick n times.
func (s *Swarm) Run(n int) {
	for k := 0; k < n; k++ {
		s.Tick()
	}
}

// Greet sends a Greeting event to the swarm's notifier, if any.
func (s *Swarm) Greet() {
	s.emit(Event{Kind: Greeting, Tick: s.ticks, Msg: "Hello, pso!"})
}

// Positions returns the current particle positions, size*dim values laid
// out particle-major.  The returned slice aliases the swarm's storage: it
// must not be modified, and its contents change on the next call to Tick.
// Copy anything that has to outlive that.
func (s *Swarm) Positions() []float64 { return s.x[:len(s.x):len(s.x)] }

// PositionsMatrix returns the positions as a size x dim matrix whose row i
// is particle i.  Like Positions it shares storage with the swarm.
func (s *Swarm) PositionsMatrix() mat.Matrix {
	return mat.NewDense(s.size, s.dim, s.x)
}

// Particle returns a copy of particle i's position.
func (s *Swarm) Particle(i int) []float64 {
	if i < 0 || i >= s.size {
		panic(fmt.Sprintf("particle index %v out of range [0,%v)", i, s.size))
	}
	return append([]float64{}, s.pos(i)...)
}

func (s *Swarm) Velocities() []float64 { return append([]float64{}, s.v...) }

func (s *Swarm) PersonalBests() []float64 { return append([]float64{}, s.p...) }

// Best returns a copy of the swarm's best known position and its
// objective value.
func (s *Swarm) Best() (pos []float64, val float64) {
	return append([]float64{}, s.g...), s.gval
}

func (s *Swarm) Size() int { return s.size }

func (s *Swarm) Dim() int { return s.dim }

// Ticks reports how many generations have run since New.
func (s *Swarm) Ticks() int { return s.ticks }

func (s *Swarm) Params() (w, cp, cg float64) { return s.w, s.cp, s.cg }

func (s *Swarm) pos(i int) []float64 { return s.x[i*s.dim : (i+1)*s.dim] }

func (s *Swarm) best(i int) []float64 { return s.p[i*s.dim : (i+1)*s.dim] }

func (s *Swarm) emit(ev Event) {
	if s.notify != nil {
		s.notify.Notify(ev)
	}
}

func finite(v []float64) bool {
	if floats.HasNaN(v) {
		return false
	}
	return !math.IsInf(floats.Max(v), 1) && !math.IsInf(floats.Min(v), -1)
}
