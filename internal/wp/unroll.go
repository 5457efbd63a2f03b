package wp

import "github.com/aledsdavies/whilesynth/internal/lang/ast"

// DefaultUnrollDepth is spec §4.6's K=7.
const DefaultUnrollDepth = 7

// UnrollAll rewrites every "while b do s" node in stmt into a K-deep
// nested if-cascade (spec §4.6), recursing into nested whiles'
// bodies first so a loop nested inside another loop's body is itself
// unrolled before being embedded K times in the outer cascade. The
// innermost branch of each cascade retains the *original,
// un-unrolled* while node as a residual. The driver discharges that
// residual's while-rule with linv=true, which is not vacuous: when an
// execution needs more than K iterations and reaches it, the rule
// demands Q in every state where the loop condition is false, with the
// body's assigned variables taking arbitrary values. Such a program is
// therefore rejected unless Q holds in all of those states.
func UnrollAll(s ast.Stmt, depth int) ast.Stmt {
	switch n := s.(type) {
	case *ast.Seq:
		return &ast.Seq{
			First:    UnrollAll(n.First, depth),
			Second:   UnrollAll(n.Second, depth),
			Position: n.Position,
		}
	case *ast.If:
		return &ast.If{
			Cond:     n.Cond,
			Then:     UnrollAll(n.Then, depth),
			Else:     UnrollAll(n.Else, depth),
			Position: n.Position,
		}
	case *ast.While:
		body := UnrollAll(n.Body, depth)
		return unrollOne(n.Cond, body, n, depth)
	default:
		// *ast.Skip, *ast.Assign, *ast.Assert have no nested Stmt.
		return s
	}
}

// unrollOne builds the K-deep cascade for a single while node whose
// (already-processed) body is body and whose untouched residual is
// original.
func unrollOne(cond ast.Expr, body ast.Stmt, original *ast.While, depth int) ast.Stmt {
	var root ast.Stmt = original
	for i := 0; i < depth; i++ {
		root = &ast.If{
			Cond:     cond,
			Then:     &ast.Seq{First: body, Second: root, Position: original.Position},
			Else:     &ast.Skip{Position: original.Position},
			Position: original.Position,
		}
	}
	return root
}
