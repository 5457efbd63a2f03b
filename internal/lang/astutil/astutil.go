// Package astutil implements the AST-level analyses of spec §4.2:
// variable collection, assignment analysis, hole discovery/renaming,
// and the textual hole splice.
package astutil

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aledsdavies/whilesynth/internal/lang/ast"
)

// Vars returns the set of names appearing at *ast.Id leaves, sorted
// for deterministic iteration. It does not descend into *ast.Hole
// (there are none once FindAndReplaceHoles has run).
func Vars(n ast.Node) []string {
	seen := map[string]bool{}
	ast.Walk(n, func(node ast.Node) {
		if id, ok := node.(*ast.Id); ok {
			seen[id.Name] = true
		}
	})
	return sortedKeys(seen)
}

// Assigned returns the names appearing as the left-hand side of a
// ":=" anywhere in t, in left-to-right occurrence order and with
// duplicates preserved (spec §4.2 calls this a multiset-as-sequence:
// the loop rule freshens every assigned name exactly once per
// occurrence set, so callers that need a set should dedupe).
func Assigned(n ast.Node) []string {
	var names []string
	ast.Walk(n, func(node ast.Node) {
		if a, ok := node.(*ast.Assign); ok {
			names = append(names, a.Left.Name)
		}
	})
	return names
}

// AssignedSet is Assigned deduplicated into a set, which is what the
// WP while-rule (spec §4.5) actually needs: the set of variables to
// freshen, not how many times each was written.
func AssignedSet(n ast.Node) map[string]bool {
	set := map[string]bool{}
	for _, name := range Assigned(n) {
		set[name] = true
	}
	return set
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// HolePrefix names every synthesized hole variable; fresh names are
// never plain program identifiers, satisfying spec §3's "hole
// variables are fresh" invariant as long as the source program avoids
// this prefix (the library does not attempt to guard against a user
// naming a variable "hole_0" themselves — that is caller error, not a
// case spec.md asks us to detect).
const HolePrefix = "hole_"

// FindAndReplaceHoles rewrites every "??" leaf into an *ast.Id naming
// a fresh hole variable "hole_<k>", k being that hole's index in
// left-to-right discovery order, and returns the rewritten tree
// alongside the ordered list of hole names.
func FindAndReplaceHoles(n ast.Stmt) (ast.Stmt, []string) {
	var names []string
	rewritten := ast.Transform(n, func(e ast.Expr) ast.Expr {
		hole, ok := e.(*ast.Hole)
		if !ok {
			return e
		}
		name := fmt.Sprintf("%s%d", HolePrefix, len(names))
		names = append(names, name)
		return &ast.Id{Name: name, Position: hole.Position}
	})
	return rewritten.(ast.Stmt), names
}

// Splice replaces each literal "??" occurrence in source, left to
// right, with the model's value for the corresponding hole name (in
// the same order FindAndReplaceHoles discovered them). valueOf is
// typically backed by an SMT model; if it reports that a hole is
// unconstrained, the literal "0" is substituted instead (spec §4.2,
// §8 "monotonicity of hole defaults").
//
// All other bytes of source — whitespace, parentheses, comments (none
// exist in this grammar) — are preserved verbatim, which is the whole
// point: the output is a minimal, diff-friendly edit of the input.
func Splice(source string, holeNames []string, valueOf func(name string) (value string, unconstrained bool)) string {
	var b strings.Builder
	rest := source
	for _, name := range holeNames {
		idx := strings.Index(rest, "??")
		if idx < 0 {
			break // fewer "??" substrings than holes: malformed caller input, stop safely
		}
		b.WriteString(rest[:idx])
		val, unconstrained := valueOf(name)
		if unconstrained {
			val = "0"
		}
		b.WriteString(val)
		rest = rest[idx+2:]
	}
	b.WriteString(rest)
	return b.String()
}
