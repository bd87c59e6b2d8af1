package loader

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/roach88/sqlcomposer/internal/boolexpr"
	"github.com/roach88/sqlcomposer/internal/operand"
	"github.com/roach88/sqlcomposer/internal/operator"
	"github.com/roach88/sqlcomposer/internal/sqlerr"
	"github.com/roach88/sqlcomposer/internal/statement"
)

// Statement is a built statement ready to render.
type Statement interface {
	Build() (*statement.Rendered, error)
	Err() error
}

// Result pairs a definition with its rendered statement.
type Result struct {
	Name     string              `json:"name"`
	Kind     string              `json:"kind"`
	Rendered *statement.Rendered `json:"rendered"`
}

// Render builds and renders every statement in file order. It stops at the
// first statement that fails.
func (f *File) Render() ([]Result, error) {
	results := make([]Result, 0, len(f.Statements))
	for i := range f.Statements {
		d := &f.Statements[i]
		r, err := d.Render()
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeBuild,
				Message: fmt.Sprintf("%s: %v", d.Name, err),
				File:    f.Path,
				Line:    d.line,
				Pos:     d.pos,
				Err:     err,
			}
		}
		results = append(results, Result{Name: d.Name, Kind: d.Kind, Rendered: r})
	}
	return results, nil
}

// Render builds the statement and renders it.
func (d *Definition) Render() (*statement.Rendered, error) {
	st, err := d.Statement()
	if err != nil {
		return nil, err
	}
	return st.Build()
}

var kindFields = map[string][]string{
	"select":  {"table", "tables", "joins", "columns", "exprs", "distinct", "where", "group_by", "with_rollup", "having", "order_by", "limit", "offset"},
	"insert":  {"table", "columns", "values", "value_types", "select", "on_duplicate"},
	"replace": {"table", "columns", "values", "value_types", "select"},
	"update":  {"table", "tables", "joins", "set", "where", "order_by", "limit"},
	"delete":  {"table", "tables", "using", "where", "order_by", "limit"},
}

// usedFields lists the kind-specific fields that are set.
func (d *Definition) usedFields() []string {
	var used []string
	add := func(name string, set bool) {
		if set {
			used = append(used, name)
		}
	}
	add("table", d.Table != "")
	add("tables", len(d.Tables) > 0)
	add("joins", len(d.Joins) > 0)
	add("using", len(d.Using) > 0)
	add("columns", len(d.Columns) > 0)
	add("exprs", len(d.Exprs) > 0)
	add("distinct", d.Distinct)
	add("where", len(d.Where) > 0)
	add("group_by", len(d.GroupBy) > 0)
	add("with_rollup", d.WithRollup)
	add("having", len(d.Having) > 0)
	add("order_by", len(d.OrderBy) > 0)
	add("limit", d.Limit != 0)
	add("offset", d.Offset != 0)
	add("set", len(d.Set) > 0)
	add("values", len(d.Values) > 0)
	add("value_types", d.ValueTypes != "")
	add("select", d.Select != nil)
	add("on_duplicate", len(d.OnDuplicate) > 0)
	return used
}

// checkFields rejects fields that the statement kind would silently ignore.
func (d *Definition) checkFields() error {
	allowed, ok := kindFields[d.Kind]
	if !ok {
		kinds := make([]string, 0, len(kindFields))
		for k := range kindFields {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		return fmt.Errorf("unknown kind %q (want one of %v)", d.Kind, kinds)
	}

	for _, field := range d.usedFields() {
		if !contains(allowed, field) {
			return fmt.Errorf("field %q does not apply to %s statements", field, d.Kind)
		}
	}

	if d.Select != nil {
		if d.Select.Kind == "" {
			d.Select.Kind = "select"
		}
		if d.Select.Kind != "select" {
			return fmt.Errorf("select source must be a select statement, got %q", d.Select.Kind)
		}
		if err := d.Select.checkFields(); err != nil {
			return fmt.Errorf("select source: %w", err)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Statement turns the definition into builder calls.
func (d *Definition) Statement() (Statement, error) {
	if err := d.checkFields(); err != nil {
		return nil, err
	}

	switch d.Kind {
	case "select":
		s, err := d.buildSelect()
		if err != nil {
			return nil, err
		}
		return s, nil
	case "insert":
		s := statement.NewInsert(d.Table)
		if err := fillInsert(d, s); err != nil {
			return nil, err
		}
		for _, frag := range d.OnDuplicate {
			args, err := d.args(frag.Params)
			if err != nil {
				return nil, fmt.Errorf("on_duplicate %q: %w", frag.SQL, err)
			}
			s.OnDuplicateKeyUpdate(frag.SQL, args...)
		}
		if err := s.Err(); err != nil {
			return nil, err
		}
		return s, nil
	case "replace":
		s := statement.NewReplace(d.Table)
		if err := fillInsert(d, s); err != nil {
			return nil, err
		}
		return s, nil
	case "update":
		s, err := d.buildUpdate()
		if err != nil {
			return nil, err
		}
		return s, nil
	case "delete":
		s, err := d.buildDelete()
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", d.Kind)
	}
}

func (d *Definition) tables() []string {
	var out []string
	if d.Table != "" {
		out = append(out, d.Table)
	}
	return append(out, d.Tables...)
}

func (d *Definition) buildSelect() (*statement.Select, error) {
	s := statement.NewSelect(d.Columns...)
	for _, frag := range d.Exprs {
		args, err := d.args(frag.Params)
		if err != nil {
			return nil, fmt.Errorf("exprs %q: %w", frag.SQL, err)
		}
		s.ColumnExpr(frag.SQL, args...)
	}
	s.Distinct(d.Distinct).From(d.tables()...)

	for _, frag := range d.Joins {
		args, err := d.args(frag.Params)
		if err != nil {
			return nil, fmt.Errorf("joins %q: %w", frag.SQL, err)
		}
		s.Join(frag.SQL, args...)
	}
	if err := d.applyNodes(s.WhereClause(), d.Where, "where"); err != nil {
		return nil, err
	}
	s.GroupBy(d.GroupBy...).WithRollup(d.WithRollup)
	if err := d.applyNodes(s.HavingClause(), d.Having, "having"); err != nil {
		return nil, err
	}
	s.OrderBy(d.OrderBy...).Limit(d.Limit).Offset(d.Offset)
	return s, s.Err()
}

// insertBuilder is the surface shared by INSERT and REPLACE.
type insertBuilder[S any] interface {
	Columns(columns ...string) S
	ValuesTyped(tags string, row ...any) S
	Select(sub *statement.Select) S
	Err() error
}

func fillInsert[S insertBuilder[S]](d *Definition, s S) error {
	s.Columns(d.Columns...)
	for i, row := range d.Values {
		args, err := d.args(row)
		if err != nil {
			return fmt.Errorf("values[%d]: %w", i, err)
		}
		s.ValuesTyped(d.ValueTypes, args...)
	}
	if d.Select != nil {
		sub, err := d.Select.buildSelect()
		if err != nil {
			return fmt.Errorf("select source: %w", err)
		}
		s.Select(sub)
	}
	return s.Err()
}

func (d *Definition) buildUpdate() (*statement.Update, error) {
	s := statement.NewUpdate(d.tables()...)
	for _, frag := range d.Joins {
		args, err := d.args(frag.Params)
		if err != nil {
			return nil, fmt.Errorf("joins %q: %w", frag.SQL, err)
		}
		s.Join(frag.SQL, args...)
	}
	for _, frag := range d.Set {
		args, err := d.args(frag.Params)
		if err != nil {
			return nil, fmt.Errorf("set %q: %w", frag.SQL, err)
		}
		s.Set(frag.SQL, args...)
	}
	if err := d.applyNodes(s.WhereClause(), d.Where, "where"); err != nil {
		return nil, err
	}
	s.OrderBy(d.OrderBy...).Limit(d.Limit)
	return s, s.Err()
}

func (d *Definition) buildDelete() (*statement.Delete, error) {
	s := statement.NewDelete(d.tables()...)
	for _, frag := range d.Using {
		args, err := d.args(frag.Params)
		if err != nil {
			return nil, fmt.Errorf("using %q: %w", frag.SQL, err)
		}
		s.Using(frag.SQL, args...)
	}
	if err := d.applyNodes(s.WhereClause(), d.Where, "where"); err != nil {
		return nil, err
	}
	s.OrderBy(d.OrderBy...).Limit(d.Limit)
	return s, s.Err()
}

// applyNodes appends a WHERE or HAVING list to c. Errors name the node by
// its path, e.g. "where[1].items[0]".
func (d *Definition) applyNodes(c *boolexpr.Clause, nodes []Node, path string) error {
	for i, n := range nodes {
		if err := d.applyNode(c, n, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Definition) applyNode(c *boolexpr.Clause, n Node, path string) error {
	set := 0
	for _, s := range []string{n.Cond, n.Column, n.In, n.Group} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%s: exactly one of cond, column, in or group is required", path)
	}

	switch {
	case n.Group != "":
		conn, err := boolexpr.ParseConnector(n.Group)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if len(n.Items) == 0 {
			return fmt.Errorf("%s: %w", path, sqlerr.NewEmptyGroup())
		}
		if err := c.OpenGroup(conn); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := d.applyNodes(c, n.Items, path+".items"); err != nil {
			return err
		}
		if err := c.CloseGroup(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil

	case n.Column != "":
		args, err := d.args(n.Operands)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cond, err := operator.Apply(n.Column, n.Op, operand.List(args...), n.Types)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return c.Add(cond)

	case n.In != "":
		args, err := d.args(n.Params)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cond, err := operator.InList(n.In, operand.List(args...), n.Types)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return c.Add(cond)

	default:
		args, err := d.args(n.Params)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		ps, err := operand.ApplyTags(operand.Flatten(operand.List(args...)), n.Types, false)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := c.AddCondition(n.Cond, ps); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	}
}

// args converts decoded params into builder arguments.
func (d *Definition) args(raw []any) ([]any, error) {
	out := make([]any, len(raw))
	for i, v := range raw {
		a, err := toArg(v, d.InferTypes)
		if err != nil {
			return nil, fmt.Errorf("param %d: %w", i, err)
		}
		out[i] = a
	}
	return out, nil
}

// toArg maps one decoded value to a builder argument:
//
//	{expr: sql, params: [...]}  raw operand
//	{value: v, type: t}         bound value with an explicit tag
//	anything else               bound value
func toArg(v any, infer bool) (any, error) {
	switch val := v.(type) {
	case map[string]any:
		return objectArg(val, infer)
	case json.Number:
		n, err := numberValue(val)
		if err != nil {
			return nil, err
		}
		v = n
	}

	nv, err := operand.Normalize(v)
	if err != nil {
		return nil, err
	}
	if !infer {
		return nv, nil
	}
	return operand.Tagged(nv, inferTag(nv)), nil
}

func objectArg(obj map[string]any, infer bool) (any, error) {
	if sql, ok := obj["expr"]; ok {
		text, ok := sql.(string)
		if !ok {
			return nil, fmt.Errorf("expr must be a string, got %T", sql)
		}
		if err := onlyKeys(obj, "expr", "params"); err != nil {
			return nil, err
		}
		var nested []any
		if raw, ok := obj["params"]; ok {
			list, ok := raw.([]any)
			if !ok {
				return nil, fmt.Errorf("expr params must be a list, got %T", raw)
			}
			for i, p := range list {
				a, err := toArg(p, infer)
				if err != nil {
					return nil, fmt.Errorf("expr param %d: %w", i, err)
				}
				nested = append(nested, a)
			}
		}
		return operand.Expr(text, nested...), nil
	}

	if raw, ok := obj["value"]; ok {
		if err := onlyKeys(obj, "value", "type"); err != nil {
			return nil, err
		}
		if n, ok := raw.(json.Number); ok {
			v, err := numberValue(n)
			if err != nil {
				return nil, err
			}
			raw = v
		}
		nv, err := operand.Normalize(raw)
		if err != nil {
			return nil, err
		}
		tag, _ := obj["type"].(string)
		if tag == "" && infer {
			tag = inferTag(nv)
		}
		if len(tag) > 1 {
			return nil, sqlerr.NewTypeArgument(tag, 1)
		}
		return operand.Tagged(nv, tag), nil
	}

	return nil, fmt.Errorf("object param needs an expr or value key")
}

func onlyKeys(obj map[string]any, keys ...string) error {
	for k := range obj {
		if !contains(keys, k) {
			return fmt.Errorf("unexpected key %q (allowed: %v)", k, keys)
		}
	}
	return nil
}

// inferTag binds NULL and values without a natural tag as strings.
func inferTag(v any) string {
	if tag := operand.InferTag(v); tag != "" {
		return tag
	}
	return operand.TagString
}

func numberValue(n json.Number) (any, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", n, err)
	}
	return f, nil
}
