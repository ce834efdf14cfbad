package scramble

import (
	"math/rand/v2"
	"time"

	"github.com/matzehuels/scrambler/pkg/frame"
)

// Reason explains why a permutation was regenerated.
type Reason string

const (
	ReasonInitial  Reason = "initial"
	ReasonResize   Reason = "resize"
	ReasonInterval Reason = "interval"
	ReasonManual   Reason = "manual"
)

// Regeneration records one permutation change and the grid size it was drawn for.
type Regeneration struct {
	Reason Reason
	Blocks int
}

// Option configures a [Scrambler].
type Option func(*Scrambler)

// WithRand sets the random source used for permutations and jitter.
func WithRand(rng *rand.Rand) Option {
	return func(s *Scrambler) { s.rng = rng }
}

// WithSeed uses a PCG source seeded with seed.
func WithSeed(seed uint64) Option {
	return WithRand(NewRand(seed))
}

// WithClock replaces time.Now for the reshuffle timer.
func WithClock(now func() time.Time) Option {
	return func(s *Scrambler) { s.now = now }
}

// NewRand returns a deterministic PCG-backed generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Scrambler applies a [GridConfig] to a stream of frames.
//
// It keeps the current permutation between frames and regenerates it when the
// config reports a dimension change or when more than the shuffle interval has
// passed since the last regeneration.
type Scrambler struct {
	cfg  *GridConfig
	rng  *rand.Rand
	now  func() time.Time
	perm Permutation

	lastShuffle time.Time
	generation  uint64
	reason      Reason
	pending     []Regeneration
}

// New returns a Scrambler reading cfg. The first permutation is generated
// immediately and the shuffle timer starts now.
func New(cfg *GridConfig, opts ...Option) *Scrambler {
	s := &Scrambler{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	cfg.TakeDirty()
	s.regenerate(ReasonInitial)
	s.lastShuffle = s.now()
	return s
}

// Config returns the config the scrambler reads on every frame.
func (s *Scrambler) Config() *GridConfig { return s.cfg }

// Permutation returns a copy of the current slot order.
func (s *Scrambler) Permutation() Permutation { return s.perm.Clone() }

// Generation counts permutation regenerations, starting at 1 for the initial one.
func (s *Scrambler) Generation() uint64 { return s.generation }

// LastReason returns why the current permutation was generated.
func (s *Scrambler) LastReason() Reason { return s.reason }

// TakeRegenerations returns the regenerations since the previous call, oldest
// first, and clears the list. A single Process call can add more than one.
func (s *Scrambler) TakeRegenerations() []Regeneration {
	r := s.pending
	s.pending = nil
	return r
}

// Process scrambles one frame and returns the new frame. f is not modified.
//
// Before composing, a pending dimension change regenerates the permutation,
// then the shuffle timer is checked: if strictly more than the interval has
// elapsed since the last timed regeneration, a new permutation is drawn and
// the timer restarts.
func (s *Scrambler) Process(f frame.Frame) (frame.Frame, error) {
	if s.cfg.TakeDirty() {
		s.regenerate(ReasonResize)
	}
	if now := s.now(); now.Sub(s.lastShuffle) > s.cfg.ShuffleInterval() {
		s.regenerate(ReasonInterval)
		s.lastShuffle = now
	}

	rows, columns := s.cfg.Rows(), s.cfg.Columns()
	var shift Shift
	if s.cfg.ColorShift() {
		shift = JitterWith(s.rng, s.cfg.ShiftRange())
	}
	return Compose(f, Partition(f, rows, columns), s.perm, rows, columns, shift)
}

// Reshuffle draws a new permutation right away and restarts the shuffle timer.
func (s *Scrambler) Reshuffle() {
	s.regenerate(ReasonManual)
	s.lastShuffle = s.now()
}

func (s *Scrambler) regenerate(r Reason) {
	s.perm = Generate(s.rng, s.cfg.Blocks())
	s.generation++
	s.reason = r
	s.pending = append(s.pending, Regeneration{Reason: r, Blocks: len(s.perm)})
}
