package boolexpr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlcomposer/internal/operand"
	"github.com/roach88/sqlcomposer/internal/sqlerr"
)

func params(vs ...any) []operand.Param {
	return operand.Flatten(operand.List(vs...))
}

// step is one builder call in a table-driven clause script.
type step struct {
	cond   string
	params []any
	open   Connector
	close  bool
}

func build(t *testing.T, steps []step) *Clause {
	t.Helper()
	c := &Clause{}
	for _, s := range steps {
		switch {
		case s.open != "":
			require.NoError(t, c.OpenGroup(s.open))
		case s.close:
			require.NoError(t, c.CloseGroup())
		default:
			require.NoError(t, c.AddCondition(s.cond, params(s.params...)))
		}
	}
	return c
}

func TestRender_FlatConditionsJoinedWithAnd(t *testing.T) {
	c := build(t, []step{
		{cond: "a = ?", params: []any{1}},
		{cond: "b > ?", params: []any{2}},
		{cond: "c IS NULL"},
	})

	sql, err := c.Render()
	require.NoError(t, err)
	assert.Equal(t, "a = ? AND b > ? AND c IS NULL", sql)
	assert.Equal(t, []any{1, 2}, operand.Values(c.Params()))
}

func TestRender_Empty(t *testing.T) {
	var c Clause
	sql, err := c.Render()
	require.NoError(t, err)
	assert.Equal(t, "", sql)
	assert.Empty(t, c.Params())
	assert.True(t, c.IsEmpty())
}

func TestRender_Groups(t *testing.T) {
	testCases := []struct {
		name  string
		steps []step
		want  string
	}{
		{
			name: "or group after sibling",
			steps: []step{
				{cond: "c0"},
				{open: Or},
				{cond: "c1"},
				{cond: "c2"},
				{close: true},
			},
			want: "c0 AND (c1 OR c2)",
		},
		{
			name: "group first",
			steps: []step{
				{open: Or},
				{cond: "c1"},
				{cond: "c2"},
				{close: true},
				{cond: "c3"},
			},
			want: "(c1 OR c2) AND c3",
		},
		{
			name: "connector before nested group belongs to parent",
			steps: []step{
				{open: Or},
				{cond: "c1"},
				{open: And},
				{cond: "c2"},
				{cond: "c3"},
				{close: true},
				{close: true},
			},
			want: "(c1 OR (c2 AND c3))",
		},
		{
			name: "adjacent groups",
			steps: []step{
				{open: Or},
				{cond: "a"},
				{cond: "b"},
				{close: true},
				{open: Or},
				{cond: "c"},
				{cond: "d"},
				{close: true},
			},
			want: "(a OR b) AND (c OR d)",
		},
		{
			name: "siblings of a nested group use the inner connector",
			steps: []step{
				{cond: "x"},
				{open: Or},
				{open: And},
				{cond: "a"},
				{cond: "b"},
				{close: true},
				{cond: "c"},
				{close: true},
				{cond: "y"},
			},
			want: "x AND ((a AND b) OR c) AND y",
		},
		{
			name: "single member group",
			steps: []step{
				{open: Or},
				{cond: "a"},
				{close: true},
			},
			want: "(a)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := build(t, tc.steps)
			sql, err := c.Render()
			require.NoError(t, err)
			assert.Equal(t, tc.want, sql)
		})
	}
}

func TestRender_ParamsFollowPlaceholderOrder(t *testing.T) {
	c := build(t, []step{
		{cond: "a = ?", params: []any{"a"}},
		{open: Or},
		{cond: "b = ?", params: []any{"b"}},
		{open: And},
		{cond: "c between ? and ?", params: []any{"c1", "c2"}},
		{cond: "d = ?", params: []any{"d"}},
		{close: true},
		{close: true},
		{cond: "e = ?", params: []any{"e"}},
	})

	sql, err := c.Render()
	require.NoError(t, err)
	assert.Equal(t, "a = ? AND (b = ? OR (c between ? and ? AND d = ?)) AND e = ?", sql)

	got := operand.Values(c.Params())
	assert.Equal(t, []any{"a", "b", "c1", "c2", "d", "e"}, got)
	assert.Equal(t, strings.Count(sql, "?"), len(got))
}

func TestRender_Idempotent(t *testing.T) {
	c := build(t, []step{{cond: "a = ?", params: []any{1}}, {open: Or}, {cond: "b"}, {cond: "c"}, {close: true}})

	first, err := c.Render()
	require.NoError(t, err)
	second, err := c.Render()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 5, c.Len())
}

func TestCloseGroup_WithoutOpen(t *testing.T) {
	var c Clause
	err := c.CloseGroup()
	assert.True(t, sqlerr.IsUnbalancedGroup(err))
	assert.True(t, c.IsEmpty(), "failed close must not append a node")

	require.NoError(t, c.OpenGroup(And))
	require.NoError(t, c.AddCondition("a", nil))
	require.NoError(t, c.CloseGroup())
	assert.True(t, sqlerr.IsUnbalancedGroup(c.CloseGroup()))
}

func TestRender_UnclosedGroup(t *testing.T) {
	c := build(t, []step{{cond: "a"}, {open: Or}, {cond: "b"}})
	assert.Equal(t, 1, c.OpenGroups())

	sql, err := c.Render()
	assert.Empty(t, sql)
	assert.True(t, sqlerr.IsUnbalancedGroup(err))
}

func TestRender_EmptyGroup(t *testing.T) {
	c := build(t, []step{{cond: "a"}, {open: Or}, {close: true}})

	sql, err := c.Render()
	assert.Empty(t, sql)
	assert.ErrorIs(t, err, sqlerr.ErrEmptyGroup)
}

func TestOpenGroup_InvalidConnector(t *testing.T) {
	var c Clause
	assert.Error(t, c.OpenGroup(Connector("XOR")))
	assert.True(t, c.IsEmpty())
}

func TestAddCondition_PlaceholderMismatch(t *testing.T) {
	var c Clause
	err := c.AddCondition("a = ? AND b = ?", params(1))
	assert.ErrorIs(t, err, sqlerr.ErrPlaceholderCount)
	assert.True(t, c.IsEmpty())

	err = c.Add(Condition{SQL: "a = 1", Params: params(1)})
	assert.ErrorIs(t, err, sqlerr.ErrPlaceholderCount)
}

func TestClone_IsIndependent(t *testing.T) {
	c := build(t, []step{{cond: "a"}})
	clone := c.Clone()
	require.NoError(t, clone.AddCondition("b", nil))

	orig, err := c.Render()
	require.NoError(t, err)
	assert.Equal(t, "a", orig)

	cloned, err := clone.Render()
	require.NoError(t, err)
	assert.Equal(t, "a AND b", cloned)
}

func TestNodes_ReturnsCopy(t *testing.T) {
	c := build(t, []step{{open: And}, {cond: "a"}, {close: true}})
	nodes := c.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, GroupOpen{Connector: And}, nodes[0])
	assert.IsType(t, Condition{}, nodes[1])
	assert.Equal(t, GroupClose{}, nodes[2])

	nodes[0] = GroupClose{}
	assert.Equal(t, GroupOpen{Connector: And}, c.Nodes()[0])
}

func TestParseConnector(t *testing.T) {
	conn, err := ParseConnector(" or ")
	require.NoError(t, err)
	assert.Equal(t, Or, conn)

	conn, err = ParseConnector("AND")
	require.NoError(t, err)
	assert.Equal(t, And, conn)

	_, err = ParseConnector("nand")
	assert.Error(t, err)
}

func TestCondition_Tags(t *testing.T) {
	cond, err := NewCondition("a = ? AND b = ?", []operand.Param{{Value: 1, Tag: "i"}, {Value: "x", Tag: "s"}})
	require.NoError(t, err)
	tags, err := cond.Tags()
	require.NoError(t, err)
	assert.Equal(t, "is", tags)
}
