package statement

import (
	"fmt"
	"log/slog"

	"github.com/roach88/sqlcomposer/internal/operand"
	"github.com/roach88/sqlcomposer/internal/params"
	"github.com/roach88/sqlcomposer/internal/sqlerr"
)

// Rendered is the artifact handed to a positional prepared-statement API.
//
// len(Params) equals the number of "?" in SQL. Types is either empty or holds
// one tag per entry of Params.
type Rendered struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params"`
	Types  string `json:"types"`
}

// base is embedded by every statement. It owns the first recorded error and
// the parameter collector, and turns the statement's render function into
// the public Render/Params/Types/Build surface.
type base struct {
	verb   string
	err    error
	coll   *params.Collector
	kinds  []params.Kind // parameter order, same as section order
	render func() (string, error)
}

func newBase(verb string, kinds []params.Kind) base {
	return base{verb: verb, coll: params.New(), kinds: kinds}
}

// fail records err unless an earlier error is already recorded.
func (b *base) fail(err error) {
	if err != nil && b.err == nil {
		b.err = err
	}
}

// addFragment records the params of a plain SQL fragment under kind.
// It reports whether the fragment was accepted.
func (b *base) addFragment(kind params.Kind, sql string, args []any) bool {
	ps, err := fragment(sql, "", args)
	if err != nil {
		b.fail(fmt.Errorf("%s: %w", kind, err))
		return false
	}
	b.coll.Add(kind, ps...)
	return true
}

// Err returns the first error recorded by a builder call, if any.
func (b *base) Err() error {
	return b.err
}

// Render returns the SQL text.
func (b *base) Render() (string, error) {
	r, err := b.Build()
	if err != nil {
		return "", err
	}
	return r.SQL, nil
}

// Params returns the bound values in placeholder order.
func (b *base) Params() ([]any, error) {
	r, err := b.Build()
	if err != nil {
		return nil, err
	}
	return r.Params, nil
}

// Types returns the type-tag text aligned with Params.
func (b *base) Types() (string, error) {
	r, err := b.Build()
	if err != nil {
		return "", err
	}
	return r.Types, nil
}

// ParamsOf concatenates the collected values of the given kinds, in the order
// given. It performs no validation; use Params for the checked sequence.
func (b *base) ParamsOf(kinds ...params.Kind) []any {
	return b.coll.Values(kinds...)
}

// Build renders the statement and collects its params with the same section
// order. No SQL is returned when any builder call or the rendering failed.
func (b *base) Build() (*Rendered, error) {
	if b.err != nil {
		return nil, b.err
	}

	sql, err := b.render()
	if err != nil {
		return nil, err
	}

	ps := b.coll.Get(b.kinds...)
	if n := operand.CountPlaceholders(sql); n != len(ps) {
		return nil, sqlerr.NewPlaceholderCount(b.verb+" statement", n, len(ps))
	}

	types, err := operand.TagText(ps)
	if err != nil {
		return nil, err
	}

	slog.Debug("statement built",
		"verb", b.verb,
		"placeholders", len(ps),
		"types", types)

	return &Rendered{SQL: sql, Params: operand.Values(ps), Types: types}, nil
}

// fragment flattens the args of a plain fragment, applies tags and checks
// that sql has one "?" per resulting param.
func fragment(sql, tags string, args []any) ([]operand.Param, error) {
	ps, err := operand.ApplyTags(operand.Flatten(operand.List(args...)), tags, false)
	if err != nil {
		return nil, err
	}
	if n := operand.CountPlaceholders(sql); n != len(ps) {
		return nil, sqlerr.NewPlaceholderCount(sql, n, len(ps))
	}
	return ps, nil
}
