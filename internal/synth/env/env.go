// Package env implements the symbolic environment of spec §3/§4.3: a
// persistent mapping from program-variable name to an SMT term,
// where a binding may be a plain constant or a lazily-resolved thunk.
//
// Thunks are what let the WP calculator (internal/wp) splice a
// candidate hole-fill expression into the formula at exactly the
// point where the hole identifier is looked up, and let the while
// rule rebind an assigned variable to a freshened Skolem constant
// without rewriting the rest of the tree.
package env

import "github.com/aledsdavies/whilesynth/internal/smt"

// Binding resolves to an SMT term plus the division-guard side
// condition that had to hold for that term to be well-defined. Most
// bindings (plain program variables) carry an always-true guard; a
// binding built from a candidate expression that itself contains a
// synthesized division propagates that division's nonzero-divisor
// condition up through every lookup, per spec §4.7 ("`/` candidates
// extend the division guard at the moment of evaluation").
type Binding interface {
	Resolve(e Env) (term smt.Term, guard smt.Term)
}

// Const is a Binding that always resolves to the same term with a
// trivially true guard: plain program-variable and hole constants,
// and integer literals substituted by an earlier Resolve.
type Const struct{ Term smt.Term }

func (c Const) Resolve(Env) (smt.Term, smt.Term) { return c.Term, smt.Bool(true) }

// Thunk is a Binding computed from the environment at lookup time:
// candidate expressions over the original program variables (C7),
// and hole aliases that must see whatever a program variable
// currently resolves to rather than its value at candidate-build time.
type Thunk func(e Env) (term smt.Term, guard smt.Term)

func (f Thunk) Resolve(e Env) (smt.Term, smt.Term) { return f(e) }

// Env is an immutable name -> Binding map. The zero Env is empty and
// usable. Update (Upd) never mutates the receiver: every prior Env
// value remains valid and observes the old bindings, which is what
// lets the WP calculator carry one environment down each branch of an
// `if` and a different one down each branch of a `;` without the
// branches interfering.
type Env struct {
	bindings map[string]Binding
}

// Make returns a fresh Env binding each name in names to its own
// Int-sorted constant of the same name (spec §4.3's mk_env).
func Make(names []string) Env {
	b := make(map[string]Binding, len(names))
	for _, n := range names {
		b[n] = Const{Term: smt.IntConst(n)}
	}
	return Env{bindings: b}
}

// Upd returns a new Env identical to e except that k now resolves via
// v; e itself is unchanged (functional update, spec §4.3).
func (e Env) Upd(k string, v Binding) Env {
	b := make(map[string]Binding, len(e.bindings)+1)
	for name, binding := range e.bindings {
		b[name] = binding
	}
	b[k] = v
	return Env{bindings: b}
}

// Lookup resolves name's current binding against e itself, returning
// ok=false if name is not bound in e at all (spec §7's
// UnsupportedSpec: a specification referencing a variable absent from
// the program).
func (e Env) Lookup(name string) (term smt.Term, guard smt.Term, ok bool) {
	b, ok := e.bindings[name]
	if !ok {
		return smt.Term{}, smt.Term{}, false
	}
	term, guard = b.Resolve(e)
	return term, guard, true
}

// Names returns the bound variable names in e, in no particular
// order; callers that need determinism should sort the result.
func (e Env) Names() []string {
	out := make([]string, 0, len(e.bindings))
	for n := range e.bindings {
		out = append(out, n)
	}
	return out
}
