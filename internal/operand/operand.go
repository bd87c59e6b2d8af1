package operand

import "strings"

// Operand is a sealed interface for the right-hand side of a condition.
//
// Operand types:
//   - Bound: a value transmitted separately, rendered as "?"
//   - Raw: a pre-rendered SQL fragment spliced in verbatim
//
// A Raw operand introduces no placeholder of its own. Its nested params are
// spliced into the parameter stream at the position the fragment occupies,
// so a fragment carrying nested params must spell out their "?" markers itself.
type Operand interface {
	operand() // Sealed - only Bound and Raw implement it
}

// Bound is a caller-supplied value matched to a placeholder by position.
type Bound struct {
	Value any
	Tag   string // single-character type tag, or "" when untagged
}

func (Bound) operand() {}

// Raw is a SQL fragment inserted as-is.
type Raw struct {
	SQL    string
	Params []Operand // nested params, in the order their "?" appear in SQL
}

func (Raw) operand() {}

// Param is one flattened entry of a parameter stream.
type Param struct {
	Value any
	Tag   string
}

// Tagged returns a Bound operand carrying an explicit type tag.
func Tagged(v any, tag string) Bound {
	return Bound{Value: v, Tag: tag}
}

// Expr returns a Raw operand. Params may be plain values or operands.
func Expr(sql string, params ...any) Raw {
	return Raw{SQL: sql, Params: List(params...)}
}

// From wraps v as an Operand. Operands pass through unchanged; anything else
// becomes an untagged Bound value.
func From(v any) Operand {
	switch op := v.(type) {
	case *Raw:
		return *op
	case *Bound:
		return *op
	case Operand:
		return op
	default:
		return Bound{Value: v}
	}
}

// List wraps every value with From, preserving order.
func List(vs ...any) []Operand {
	if len(vs) == 0 {
		return nil
	}
	ops := make([]Operand, len(vs))
	for i, v := range vs {
		ops[i] = From(v)
	}
	return ops
}

// Placeholder returns the SQL text an operand occupies: "?" for Bound values,
// the fragment itself for Raw.
func Placeholder(op Operand) string {
	if r, ok := op.(Raw); ok {
		return r.SQL
	}
	return "?"
}

// Flatten expands operands into the ordered parameter stream they contribute.
// Raw operands contribute their nested params, recursively.
func Flatten(ops []Operand) []Param {
	var params []Param
	for _, op := range ops {
		params = appendFlat(params, op)
	}
	return params
}

// FlattenOne expands a single operand.
func FlattenOne(op Operand) []Param {
	return appendFlat(nil, op)
}

func appendFlat(dst []Param, op Operand) []Param {
	switch o := op.(type) {
	case Bound:
		return append(dst, Param{Value: o.Value, Tag: o.Tag})
	case Raw:
		for _, nested := range o.Params {
			dst = appendFlat(dst, nested)
		}
	}
	return dst
}

// Values returns the values of a parameter stream.
func Values(params []Param) []any {
	values := make([]any, len(params))
	for i, p := range params {
		values[i] = p.Value
	}
	return values
}

// CountPlaceholders returns the number of "?" markers in sql.
func CountPlaceholders(sql string) int {
	return strings.Count(sql, "?")
}
