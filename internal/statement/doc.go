// Package statement assembles complete SQL statements around the boolean
// expression core.
//
// Each builder (Select, Insert, Replace, Update, Delete) holds its sections
// and a params.Collector. Build renders the sections in a fixed order and asks
// the collector for the parameter streams in that same order, so the result
// always satisfies len(Params) == number of "?" in SQL.
//
// Builders are fluent and record the first failing call; the error is
// returned by Err, Render, Params, Types and Build, and no SQL is produced.
//
//	s := statement.NewSelect("id", "name").
//		From("users").
//		Where("active = ?", true).
//		OpenWhereOr().
//		WhereOp("age", "<", 18).
//		WhereIn("role in (?)", "admin", "owner").
//		CloseWhere().
//		OrderBy("name").
//		Limit(10)
//
//	r, err := s.Build()
//	// r.SQL:    SELECT id, name
//	//           FROM users
//	//           WHERE active = ? AND (age < ? OR role in (?, ?))
//	//           ORDER BY name
//	//           LIMIT 10
//	// r.Params: [true 18 admin owner]
//
// A statement is owned by one goroutine while it is being built.
package statement
