package loader

import "cuelang.org/go/cue/token"

// File is a set of named statement definitions.
type File struct {
	Path       string       `yaml:"-" json:"-" toml:"-"`
	Statements []Definition `yaml:"statements" json:"statements" toml:"statements"`
}

// Definition describes one statement as data. Which fields apply depends on
// Kind; see the embedded CUE schema for the full shape.
type Definition struct {
	Name string `yaml:"name" json:"name" toml:"name"`
	Kind string `yaml:"kind" json:"kind" toml:"kind"` // select, insert, replace, update or delete

	Table    string     `yaml:"table,omitempty" json:"table,omitempty" toml:"table,omitempty"`
	Tables   []string   `yaml:"tables,omitempty" json:"tables,omitempty" toml:"tables,omitempty"`
	Joins    []Fragment `yaml:"joins,omitempty" json:"joins,omitempty" toml:"joins,omitempty"`
	Using    []Fragment `yaml:"using,omitempty" json:"using,omitempty" toml:"using,omitempty"`
	Columns  []string   `yaml:"columns,omitempty" json:"columns,omitempty" toml:"columns,omitempty"`
	Exprs    []Fragment `yaml:"exprs,omitempty" json:"exprs,omitempty" toml:"exprs,omitempty"`
	Distinct bool       `yaml:"distinct,omitempty" json:"distinct,omitempty" toml:"distinct,omitempty"`

	Where      []Node   `yaml:"where,omitempty" json:"where,omitempty" toml:"where,omitempty"`
	GroupBy    []string `yaml:"group_by,omitempty" json:"group_by,omitempty" toml:"group_by,omitempty"`
	WithRollup bool     `yaml:"with_rollup,omitempty" json:"with_rollup,omitempty" toml:"with_rollup,omitempty"`
	Having     []Node   `yaml:"having,omitempty" json:"having,omitempty" toml:"having,omitempty"`
	OrderBy    []string `yaml:"order_by,omitempty" json:"order_by,omitempty" toml:"order_by,omitempty"`
	Limit      int      `yaml:"limit,omitempty" json:"limit,omitempty" toml:"limit,omitempty"`
	Offset     int      `yaml:"offset,omitempty" json:"offset,omitempty" toml:"offset,omitempty"`

	Set         []Fragment  `yaml:"set,omitempty" json:"set,omitempty" toml:"set,omitempty"`
	Values      [][]any     `yaml:"values,omitempty" json:"values,omitempty" toml:"values,omitempty"`
	ValueTypes  string      `yaml:"value_types,omitempty" json:"value_types,omitempty" toml:"value_types,omitempty"`
	Select      *Definition `yaml:"select,omitempty" json:"select,omitempty" toml:"select,omitempty"`
	OnDuplicate []Fragment  `yaml:"on_duplicate,omitempty" json:"on_duplicate,omitempty" toml:"on_duplicate,omitempty"`

	// InferTypes tags every untagged parameter from its Go type.
	InferTypes bool `yaml:"infer_types,omitempty" json:"infer_types,omitempty" toml:"infer_types,omitempty"`

	line int
	pos  token.Pos
}

// Fragment is a SQL snippet with the params for its "?" markers.
type Fragment struct {
	SQL    string `yaml:"sql" json:"sql" toml:"sql"`
	Params []any  `yaml:"params,omitempty" json:"params,omitempty" toml:"params,omitempty"`
}

// Node is one entry of a WHERE or HAVING list. Exactly one of Cond, Column,
// In or Group is set.
//
//	{cond: "a = ?", params: [1]}                    plain condition
//	{column: "age", op: "between", operands: [1, 9]} catalog operator
//	{in: "size in (?)", params: [24, 64], types: i} list expansion
//	{group: OR, items: [...]}                       parenthesized group
//
// A param or operand written as {expr: "...", params: [...]} is spliced in
// as raw SQL; {value: v, type: t} binds v with an explicit tag.
type Node struct {
	Cond     string `yaml:"cond,omitempty" json:"cond,omitempty" toml:"cond,omitempty"`
	Column   string `yaml:"column,omitempty" json:"column,omitempty" toml:"column,omitempty"`
	Op       string `yaml:"op,omitempty" json:"op,omitempty" toml:"op,omitempty"`
	Operands []any  `yaml:"operands,omitempty" json:"operands,omitempty" toml:"operands,omitempty"`
	In       string `yaml:"in,omitempty" json:"in,omitempty" toml:"in,omitempty"`
	Params   []any  `yaml:"params,omitempty" json:"params,omitempty" toml:"params,omitempty"`
	Types    string `yaml:"types,omitempty" json:"types,omitempty" toml:"types,omitempty"`
	Group    string `yaml:"group,omitempty" json:"group,omitempty" toml:"group,omitempty"`
	Items    []Node `yaml:"items,omitempty" json:"items,omitempty" toml:"items,omitempty"`
}
