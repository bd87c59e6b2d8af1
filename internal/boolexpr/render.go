package boolexpr

import (
	"fmt"
	"strings"

	"github.com/roach88/sqlcomposer/internal/sqlerr"
)

// frame tracks one open group while rendering.
type frame struct {
	conn    Connector
	emitted bool // a sibling has already been written in this group
}

// Render converts the clause to SQL text.
//
// Single pass over the nodes with a stack of frames; the root frame joins
// with AND. The connector written before a sub-group belongs to the
// enclosing frame, never to the sub-group. A closed group counts as one
// sibling of its parent.
//
// Render fails with UNBALANCED_GROUP when groups are left open and with
// EMPTY_GROUP when a group has no members. It does not modify the clause and
// may be called repeatedly.
func (c *Clause) Render() (string, error) {
	var sb strings.Builder
	stack := []frame{{conn: And}}

	for i, n := range c.nodes {
		top := &stack[len(stack)-1]

		switch node := n.(type) {
		case Condition:
			if top.emitted {
				writeConnector(&sb, top.conn)
			}
			sb.WriteString(node.SQL)
			top.emitted = true

		case GroupOpen:
			if top.emitted {
				writeConnector(&sb, top.conn)
			}
			sb.WriteByte('(')
			stack = append(stack, frame{conn: node.Connector})

		case GroupClose:
			if len(stack) == 1 {
				return "", sqlerr.NewUnbalancedGroup(fmt.Sprintf("node %d closes a group that was never opened", i))
			}
			if !top.emitted {
				return "", sqlerr.NewEmptyGroup()
			}
			sb.WriteByte(')')
			stack = stack[:len(stack)-1]
			stack[len(stack)-1].emitted = true

		default:
			return "", fmt.Errorf("unsupported node type: %T", n)
		}
	}

	if open := len(stack) - 1; open > 0 {
		return "", sqlerr.NewUnbalancedGroup(fmt.Sprintf("%d group(s) left open", open))
	}
	return sb.String(), nil
}

func writeConnector(sb *strings.Builder, conn Connector) {
	sb.WriteByte(' ')
	sb.WriteString(string(conn))
	sb.WriteByte(' ')
}
