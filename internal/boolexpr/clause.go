package boolexpr

import (
	"fmt"
	"slices"

	"github.com/roach88/sqlcomposer/internal/operand"
	"github.com/roach88/sqlcomposer/internal/sqlerr"
)

// Clause is the ordered node sequence of one WHERE or HAVING expression.
//
// Nodes are never reordered, merged or deduplicated: the clause is exactly
// the caller's append sequence. The zero value is an empty clause ready for use.
// A Clause is not safe for concurrent mutation.
type Clause struct {
	nodes []Node
	open  int // groups opened and not yet closed
}

// Add appends a condition after checking its placeholder invariant.
func (c *Clause) Add(cond Condition) error {
	if n := operand.CountPlaceholders(cond.SQL); n != len(cond.Params) {
		return sqlerr.NewPlaceholderCount(cond.SQL, n, len(cond.Params))
	}
	c.nodes = append(c.nodes, cond)
	return nil
}

// AddCondition appends a condition built from sql and its params.
func (c *Clause) AddCondition(sql string, params []operand.Param) error {
	cond, err := NewCondition(sql, params)
	if err != nil {
		return err
	}
	c.nodes = append(c.nodes, cond)
	return nil
}

// OpenGroup appends the start of a sub-group joined internally by conn.
func (c *Clause) OpenGroup(conn Connector) error {
	if conn != And && conn != Or {
		return fmt.Errorf("invalid connector %q: must be AND or OR", conn)
	}
	c.nodes = append(c.nodes, GroupOpen{Connector: conn})
	c.open++
	return nil
}

// CloseGroup appends the end of the innermost open group.
func (c *Clause) CloseGroup() error {
	if c.open == 0 {
		return sqlerr.NewUnbalancedGroup("close without a matching open group")
	}
	c.nodes = append(c.nodes, GroupClose{})
	c.open--
	return nil
}

// OpenGroups returns the number of groups still waiting for a close.
func (c *Clause) OpenGroups() int {
	return c.open
}

// Len returns the number of nodes.
func (c *Clause) Len() int {
	return len(c.nodes)
}

// IsEmpty reports whether nothing has been appended.
func (c *Clause) IsEmpty() bool {
	return len(c.nodes) == 0
}

// Nodes returns a copy of the node sequence.
func (c *Clause) Nodes() []Node {
	return slices.Clone(c.nodes)
}

// Clone returns an independent copy that can be mutated separately.
func (c *Clause) Clone() *Clause {
	return &Clause{nodes: slices.Clone(c.nodes), open: c.open}
}

// Params replays the node sequence and returns the parameter stream in the
// order the rendered placeholders appear. Group boundaries contribute nothing.
func (c *Clause) Params() []operand.Param {
	var params []operand.Param
	for _, n := range c.nodes {
		if cond, ok := n.(Condition); ok {
			params = append(params, cond.Params...)
		}
	}
	return params
}
