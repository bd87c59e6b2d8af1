// Package params collects the parameter streams of a statement per clause
// kind and concatenates them in render order.
package params

import (
	"fmt"

	"github.com/roach88/sqlcomposer/internal/operand"
)

// Kind names one parameter-carrying section of a statement.
type Kind string

const (
	Select      Kind = "select"
	Tables      Kind = "tables"
	Set         Kind = "set"
	Values      Kind = "values"
	SubSelect   Kind = "sub_select"
	Where       Kind = "where"
	GroupBy     Kind = "group_by"
	Having      Kind = "having"
	OrderBy     Kind = "order_by"
	OnDuplicate Kind = "on_duplicate"
)

// Source supplies a parameter stream computed on demand, such as a clause
// replaying its nodes.
type Source interface {
	Params() []operand.Param
}

// Collector accumulates one ordered parameter stream per Kind.
//
// A kind is either appended to directly (Add) or bound to a Source (Bind),
// never both. The zero value is not usable; call New.
type Collector struct {
	added map[Kind][]operand.Param
	bound map[Kind]Source
}

// New creates an empty Collector.
func New() *Collector {
	return &Collector{
		added: make(map[Kind][]operand.Param),
		bound: make(map[Kind]Source),
	}
}

// Add appends params to kind's stream.
func (c *Collector) Add(kind Kind, ps ...operand.Param) {
	if len(ps) == 0 {
		return
	}
	c.added[kind] = append(c.added[kind], ps...)
}

// Bind makes kind's stream come from src. It panics if params were already
// added for kind, since the two streams could not be ordered against each other.
func (c *Collector) Bind(kind Kind, src Source) {
	if _, ok := c.added[kind]; ok {
		panic(fmt.Sprintf("params: kind %q already has added params", kind))
	}
	c.bound[kind] = src
}

// Kind returns the stream of a single kind.
func (c *Collector) Kind(kind Kind) []operand.Param {
	if src, ok := c.bound[kind]; ok {
		return src.Params()
	}
	return c.added[kind]
}

// Get concatenates the streams of kinds in the order given. Callers must
// pass the same order the statement renders its sections in.
func (c *Collector) Get(kinds ...Kind) []operand.Param {
	var out []operand.Param
	for _, k := range kinds {
		out = append(out, c.Kind(k)...)
	}
	return out
}

// Values is Get reduced to the bare values.
func (c *Collector) Values(kinds ...Kind) []any {
	return operand.Values(c.Get(kinds...))
}

// Types returns the aligned tag text of Get(kinds...).
func (c *Collector) Types(kinds ...Kind) (string, error) {
	return operand.TagText(c.Get(kinds...))
}

// Clone returns a copy whose added streams can grow independently.
// Bound sources are shared.
func (c *Collector) Clone() *Collector {
	out := New()
	for k, ps := range c.added {
		out.added[k] = append([]operand.Param(nil), ps...)
	}
	for k, src := range c.bound {
		out.bound[k] = src
	}
	return out
}
