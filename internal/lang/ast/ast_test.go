package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestStringRendering(t *testing.T) {
	prog := &Seq{
		First:  &Assign{Left: &Id{Name: "a"}, Right: &Num{Value: 0}},
		Second: &If{
			Cond: &BinOp{Op: OpLt, Left: &Id{Name: "a"}, Right: &Num{Value: 1}},
			Then: &Assign{Left: &Id{Name: "a"}, Right: &Num{Value: 1}},
			Else: &Skip{},
		},
	}
	assert.Equal(t, "a := 0;if a < 1 then a := 1 else skip", prog.String())
}

func TestOpIsRelational(t *testing.T) {
	rel := []Op{OpEq, OpNeq, OpLt, OpGt, OpLe, OpGe}
	for _, op := range rel {
		assert.Truef(t, op.IsRelational(), "%v should be relational", op)
	}
	arith := []Op{Add, Sub, Mul, Div}
	for _, op := range arith {
		assert.Falsef(t, op.IsRelational(), "%v should not be relational", op)
	}
}

func TestWalkVisitsEveryNode(t *testing.T) {
	prog := &Seq{
		First:  &Assign{Left: &Id{Name: "a"}, Right: &Hole{}},
		Second: &While{Cond: &BinOp{Op: OpGt, Left: &Id{Name: "a"}, Right: &Num{Value: 0}}, Body: &Assert{Cond: &Id{Name: "a"}}},
	}
	var kinds []string
	Walk(prog, func(n Node) {
		switch n.(type) {
		case *Seq:
			kinds = append(kinds, "Seq")
		case *Assign:
			kinds = append(kinds, "Assign")
		case *Hole:
			kinds = append(kinds, "Hole")
		case *While:
			kinds = append(kinds, "While")
		case *BinOp:
			kinds = append(kinds, "BinOp")
		case *Assert:
			kinds = append(kinds, "Assert")
		case *Id:
			kinds = append(kinds, "Id")
		case *Num:
			kinds = append(kinds, "Num")
		}
	})
	want := []string{"Seq", "Assign", "Id", "Hole", "While", "BinOp", "Id", "Num", "Assert", "Id"}
	assert.Equal(t, want, kinds)
}

func TestTransformReplacesHoles(t *testing.T) {
	prog := &Assign{Left: &Id{Name: "a"}, Right: &Hole{}}
	replaced := Transform(prog, func(e Expr) Expr {
		if _, ok := e.(*Hole); ok {
			return &Id{Name: "hole_0"}
		}
		return e
	})
	want := &Assign{Left: &Id{Name: "a"}, Right: &Id{Name: "hole_0"}}
	if diff := cmp.Diff(want, replaced); diff != "" {
		t.Errorf("Transform result mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformLeavesNonHoleTreeUnchanged(t *testing.T) {
	prog := &Seq{
		First:  &Assign{Left: &Id{Name: "a"}, Right: &Num{Value: 0}},
		Second: &While{Cond: &BinOp{Op: OpLt, Left: &Id{Name: "a"}, Right: &Num{Value: 3}}, Body: &Assert{Cond: &Id{Name: "a"}}},
	}
	replaced := Transform(prog, func(e Expr) Expr {
		if _, ok := e.(*Hole); ok {
			return &Id{Name: "hole_0"}
		}
		return e
	})
	if diff := cmp.Diff(prog, replaced); diff != "" {
		t.Errorf("Transform should be a no-op without holes (-want +got):\n%s", diff)
	}
}

func TestTransformRejectsNonIDAssignTarget(t *testing.T) {
	prog := &Assign{Left: &Id{Name: "a"}, Right: &Num{Value: 1}}
	assert.Panics(t, func() {
		Transform(prog, func(e Expr) Expr {
			if _, ok := e.(*Id); ok {
				return &Num{Value: 0}
			}
			return e
		})
	})
}
