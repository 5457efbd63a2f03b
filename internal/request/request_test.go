package request

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/whilesynth/internal/smt"
	"github.com/aledsdavies/whilesynth/internal/smt/smttest"
	"github.com/aledsdavies/whilesynth/internal/synth/env"
)

func TestParseValidRequest(t *testing.T) {
	raw := []byte(`{"source":"a := ??","inputs":{},"outputs":{"a":6},"withExprs":false}`)
	req, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "a := ??", req.Source)
	assert.Equal(t, map[string]int{"a": 6}, req.Outputs)
	assert.False(t, req.WithExprs)
}

func TestParseRejectsMissingRequiredField(t *testing.T) {
	raw := []byte(`{"inputs":{},"outputs":{}}`)
	_, err := Parse(raw)
	require.Error(t, err)
}

func TestParseRejectsUnknownField(t *testing.T) {
	raw := []byte(`{"source":"skip","inputs":{},"outputs":{},"bogus":1}`)
	_, err := Parse(raw)
	require.Error(t, err)
}

func TestParseRejectsNonIntegerBinding(t *testing.T) {
	raw := []byte(`{"source":"skip","inputs":{},"outputs":{"a":"six"}}`)
	_, err := Parse(raw)
	require.Error(t, err)
}

func TestParsePredicateEmptyStringYieldsTrue(t *testing.T) {
	pred, err := ParsePredicate("")
	require.NoError(t, err)
	term, err := pred(env.Make(nil))
	require.NoError(t, err)
	assert.Equal(t, smt.Bool(true), term)
}

func TestParsePredicateSingleClause(t *testing.T) {
	pred, err := ParsePredicate("a = 0")
	require.NoError(t, err)

	e := env.Make([]string{"a"}).Upd("a", env.Const{Term: smt.Int(0)})
	term, err := pred(e)
	require.NoError(t, err)

	res, _, err := smttest.New(0, 0).Check(context.Background(), term)
	require.NoError(t, err)
	assert.Equal(t, smt.Sat, res)
}

func TestParsePredicateConjoinsMultipleClauses(t *testing.T) {
	pred, err := ParsePredicate("a = 0 && b = 0")
	require.NoError(t, err)

	e := env.Make([]string{"a", "b"}).
		Upd("a", env.Const{Term: smt.Int(0)}).
		Upd("b", env.Const{Term: smt.Int(1)})
	term, err := pred(e)
	require.NoError(t, err)

	res, _, err := smttest.New(0, 1).Check(context.Background(), term)
	require.NoError(t, err)
	assert.Equal(t, smt.Unsat, res, "b=1 violates the second clause")
}

func TestParsePredicateRejectsInvalidClauseSyntax(t *testing.T) {
	_, err := ParsePredicate("a ==== 0")
	require.Error(t, err)
}
