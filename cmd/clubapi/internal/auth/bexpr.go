package auth

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-bexpr"
	lru "github.com/hashicorp/golang-lru/v2"
)

// filterCache stores compiled go-bexpr evaluators keyed by expression.
var filterCache, _ = lru.New[string, *bexpr.Evaluator](256)

// Filter is a compiled list filter such as `category == "robotics"`.
// The zero Filter matches everything.
type Filter struct {
	expr      string
	evaluator *bexpr.Evaluator
}

// CompileFilter parses a go-bexpr expression. An empty expression yields a
// filter that matches everything; a malformed one fails with ErrInvalidInput.
func CompileFilter(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Filter{}, nil
	}

	if cached, ok := filterCache.Get(expr); ok {
		return Filter{expr: expr, evaluator: cached}, nil
	}

	evaluator, err := bexpr.CreateEvaluator(expr)
	if err != nil {
		return Filter{}, fmt.Errorf("%w: filter %q: %v", ErrInvalidInput, expr, err)
	}
	filterCache.Add(expr, evaluator)

	return Filter{expr: expr, evaluator: evaluator}, nil
}

// String returns the source expression.
func (f Filter) String() string { return f.expr }

// Match evaluates the filter against the JSON form of v, so selectors use
// the same field names clients see. Evaluation errors (missing fields,
// type mismatches) count as no match.
func (f Filter) Match(v any) bool {
	if f.evaluator == nil {
		return true
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return false
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false
	}

	matches, err := f.evaluator.Evaluate(doc)
	if err != nil {
		return false
	}
	return matches
}
