// Package request parses and validates the JSON synthesis-request
// document the CLI and any future UI front-end send across the
// process boundary (spec §3.2): source program, input/output example
// bindings, optional Hoare-triple predicates, and the withExprs flag.
//
// Validation is schema-driven rather than hand-rolled field checking,
// following the teacher's own JSON Schema validator
// (core/types/validation.go) down to compiling a Draft2020 schema
// once and reusing it.
package request

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/aledsdavies/whilesynth/internal/encode"
	"github.com/aledsdavies/whilesynth/internal/lang/ast"
	"github.com/aledsdavies/whilesynth/internal/lang/parser"
	"github.com/aledsdavies/whilesynth/internal/smt"
	"github.com/aledsdavies/whilesynth/internal/synth/env"
	"github.com/aledsdavies/whilesynth/internal/wp"
)

const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["source", "inputs", "outputs"],
  "additionalProperties": false,
  "properties": {
    "source":    {"type": "string", "minLength": 1},
    "inputs":    {"type": "object", "additionalProperties": {"type": "integer"}},
    "outputs":   {"type": "object", "additionalProperties": {"type": "integer"}},
    "withExprs": {"type": "boolean"},
    "pre":       {"type": "string"},
    "post":      {"type": "string"},
    "invariant": {"type": "string"}
  }
}`

var compiled *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema://whilesynth/request.json", strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("request: invalid embedded schema: %v", err))
	}
	s, err := compiler.Compile("schema://whilesynth/request.json")
	if err != nil {
		panic(fmt.Sprintf("request: schema did not compile: %v", err))
	}
	compiled = s
}

// Request is a decoded, schema-valid synthesis request. Pre, Post,
// and Invariant are left as raw boolean-expression source; a caller
// that wants synthesizeAndVerify must parse them into wp.Predicate
// with ParsePredicate.
type Request struct {
	Source    string
	Inputs    map[string]int
	Outputs   map[string]int
	WithExprs bool
	Pre       string
	Post      string
	Invariant string
}

// Parse validates raw against the request schema and decodes it.
func Parse(raw []byte) (Request, error) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Request{}, fmt.Errorf("request: invalid JSON: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return Request{}, fmt.Errorf("request: schema validation failed: %w", err)
	}

	var r struct {
		Source    string         `json:"source"`
		Inputs    map[string]int `json:"inputs"`
		Outputs   map[string]int `json:"outputs"`
		WithExprs bool           `json:"withExprs"`
		Pre       string         `json:"pre"`
		Post      string         `json:"post"`
		Invariant string         `json:"invariant"`
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return Request{}, fmt.Errorf("request: decoding: %w", err)
	}

	return Request{
		Source:    r.Source,
		Inputs:    r.Inputs,
		Outputs:   r.Outputs,
		WithExprs: r.WithExprs,
		Pre:       r.Pre,
		Post:      r.Post,
		Invariant: r.Invariant,
	}, nil
}

// ParsePredicate compiles a Hoare-triple predicate (spec §6's P/Q/
// linv) into a wp.Predicate. The While-language expression grammar
// has no boolean connective of its own (spec §4.1's E is a single
// comparison, non-chaining), so a predicate is one or more of those
// comparisons joined by "&&" — e.g. "a = 0 && b = 0" for the spec's
// worked example Q=(a=0 ∧ b=0). An empty string yields wp.True.
func ParsePredicate(src string) (wp.Predicate, error) {
	clauses := splitClauses(src)
	if len(clauses) == 0 {
		return wp.True, nil
	}

	parsed := make([]ast.Expr, 0, len(clauses))
	for _, c := range clauses {
		expr, err := parser.ParseExpr(c)
		if err != nil {
			return nil, fmt.Errorf("request: invalid predicate clause %q: %w", c, err)
		}
		parsed = append(parsed, expr)
	}

	return func(e env.Env) (smt.Term, error) {
		terms := make([]smt.Term, 0, len(parsed))
		for _, expr := range parsed {
			term, guard, err := encode.Expr(expr, e)
			if err != nil {
				return smt.Term{}, err
			}
			terms = append(terms, smt.And(guard, term))
		}
		return smt.And(terms...), nil
	}, nil
}

func splitClauses(src string) []string {
	var out []string
	for _, part := range strings.Split(src, "&&") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
