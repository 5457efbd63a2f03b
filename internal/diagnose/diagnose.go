// Package diagnose formats a friendlier "did you mean x?" suggestion
// for a variable name absent from a program (the CLI attaches it to
// the driver's UnsupportedSpecError), the way the teacher's planner
// resolves an unrecognized decorator name against the ones actually
// in scope.
package diagnose

import "github.com/lithammer/fuzzysearch/fuzzy"

// ClosestMatch returns the candidate in scope that best matches name,
// or "" if scope is empty or nothing ranks as similar enough to be
// worth suggesting.
func ClosestMatch(name string, scope []string) string {
	if len(scope) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(name, scope)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target
}

// UnboundVariableHint formats a diagnostic for a variable name absent
// from scope, suggesting the closest in-scope name when one exists.
func UnboundVariableHint(name string, scope []string) string {
	if match := ClosestMatch(name, scope); match != "" {
		return "unbound variable " + quote(name) + " — did you mean " + quote(match) + "?"
	}
	return "unbound variable " + quote(name)
}

func quote(s string) string { return "\"" + s + "\"" }
