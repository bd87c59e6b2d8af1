package boolexpr

import (
	"fmt"
	"strings"

	"github.com/roach88/sqlcomposer/internal/operand"
	"github.com/roach88/sqlcomposer/internal/sqlerr"
)

// Connector is the boolean joiner placed between siblings of one group.
type Connector string

const (
	And Connector = "AND"
	Or  Connector = "OR"
)

// ParseConnector accepts "and"/"or" in any case.
func ParseConnector(s string) (Connector, error) {
	switch Connector(strings.ToUpper(strings.TrimSpace(s))) {
	case And:
		return And, nil
	case Or:
		return Or, nil
	default:
		return "", fmt.Errorf("invalid connector %q: must be AND or OR", s)
	}
}

// Node is a sealed interface for the entries of a Clause.
//
// Node types:
//   - Condition: a SQL fragment and the params its placeholders consume
//   - GroupOpen: start of a parenthesized sub-group
//   - GroupClose: end of the innermost open group
type Node interface {
	node() // Sealed - only types in this package implement it
}

// Condition is one leaf of a boolean expression.
//
// Invariant: the number of "?" in SQL equals len(Params).
type Condition struct {
	SQL    string
	Params []operand.Param
}

func (Condition) node() {}

// NewCondition builds a Condition, checking the placeholder invariant.
func NewCondition(sql string, params []operand.Param) (Condition, error) {
	if n := operand.CountPlaceholders(sql); n != len(params) {
		return Condition{}, sqlerr.NewPlaceholderCount(sql, n, len(params))
	}
	return Condition{SQL: sql, Params: params}, nil
}

// Tags returns the condition's tag text (see operand.TagText).
func (c Condition) Tags() (string, error) {
	return operand.TagText(c.Params)
}

// GroupOpen starts a sub-group. Connector joins the siblings inside the
// group; the group itself is joined to its own siblings by the enclosing
// group's connector.
type GroupOpen struct {
	Connector Connector
}

func (GroupOpen) node() {}

// GroupClose ends the innermost open group.
type GroupClose struct{}

func (GroupClose) node() {}
