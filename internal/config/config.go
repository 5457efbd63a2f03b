// Package config collects the tunables the driver and enumerator need
// that spec.md fixes as named constants (unroll depth, phase cap) but
// that a long-lived library should still expose as overridable
// defaults rather than bury as magic numbers at every call site.
package config

import (
	"time"

	"github.com/aledsdavies/whilesynth/internal/enum"
	"github.com/aledsdavies/whilesynth/internal/wp"
)

// Config holds the knobs a synthesis/verification run is parameterized
// over. The zero value is not valid; use Default() or New with options.
type Config struct {
	// UnrollDepth is K in spec §4.6: the fixed depth every while loop
	// is unrolled to before WP, in the absence of a supplied loop
	// invariant.
	UnrollDepth int

	// PhaseCap is the enumerator's global phase-index cap (spec
	// §4.7): exceeding it is reported as a timeout.
	PhaseCap int

	// SolverTimeout bounds each solver Check call driver.Synthesize
	// makes (spec §5: "may optionally run a solver call under a
	// wall-clock timeout"). Zero disables the timeout wrapper. The
	// Verify check is not bounded by it.
	SolverTimeout time.Duration

	// WithExprs enables phase k>=1 expression synthesis (spec §4.7);
	// false restricts every hole to a single unconstrained integer
	// constant attempt.
	WithExprs bool
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithUnrollDepth overrides the default unroll depth K.
func WithUnrollDepth(k int) Option {
	return func(c *Config) { c.UnrollDepth = k }
}

// WithPhaseCap overrides the default enumerator phase cap.
func WithPhaseCap(n int) Option {
	return func(c *Config) { c.PhaseCap = n }
}

// WithSolverTimeout bounds every solver call driver.Synthesize makes
// under d.
func WithSolverTimeout(d time.Duration) Option {
	return func(c *Config) { c.SolverTimeout = d }
}

// WithExprs toggles expression-depth synthesis on or off.
func WithExprs(on bool) Option {
	return func(c *Config) { c.WithExprs = on }
}

// Default returns spec.md's defaults: K=7, phase cap=10, no solver
// timeout, constants-only synthesis.
func Default() Config {
	return Config{
		UnrollDepth: wp.DefaultUnrollDepth,
		PhaseCap:    enum.DefaultPhaseCap,
		WithExprs:   false,
	}
}

// New returns Default() with opts applied in order.
func New(opts ...Option) Config {
	c := Default()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
