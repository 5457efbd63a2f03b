package wp

import "fmt"

// Fresher generates Skolem-fresh names for the while rule's
// universally quantified loop-iteration constants (spec §4.5's V').
// It is threaded explicitly through WP construction rather than kept
// as global mutable state, so two independent synthesis runs (or two
// candidates checked back to back) never collide and a run is safe to
// replay deterministically given the same starting counter.
type Fresher struct{ n int }

// NewFresher returns a Fresher starting at 0.
func NewFresher() *Fresher { return &Fresher{} }

// Next returns a name derived from base that has not been returned by
// this Fresher before.
func (f *Fresher) Next(base string) string {
	name := fmt.Sprintf("%s!%d", base, f.n)
	f.n++
	return name
}
