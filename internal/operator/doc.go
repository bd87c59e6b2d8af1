// Package operator holds the operator catalog and the applier that expands
// (column, operator, operands) into a boolexpr.Condition.
//
// The catalog is a process-wide, read-only table keyed by both SQL symbol
// and human name. It is safe for concurrent reads.
package operator
