// Package boolexpr composes the boolean expressions of WHERE and HAVING
// clauses.
//
// A Clause is a flat, ordered sequence of nodes:
//
//	Condition | GroupOpen{AND|OR} | GroupClose
//
// Render walks the sequence once and produces correctly parenthesized SQL.
// Params walks the same sequence and produces the parameter stream. Both read
// the nodes in append order, so the n-th "?" in the rendered text always
// corresponds to the n-th param.
//
// Example:
//
//	var c boolexpr.Clause
//	c.AddCondition("a = ?", params(1))
//	c.OpenGroup(boolexpr.Or)
//	c.AddCondition("b = ?", params(2))
//	c.AddCondition("c = ?", params(3))
//	c.CloseGroup()
//
//	c.Render() // "a = ? AND (b = ? OR c = ?)"
//	c.Params() // [1 2 3]
package boolexpr
