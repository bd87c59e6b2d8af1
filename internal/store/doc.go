// Package store runs rendered statements against SQLite.
//
// It exists to prove the composer's output rather than to persist anything:
// Check compiles a statement with its bound params under EXPLAIN, Query and
// Exec run it. SQLite ignores mysqli type tags, so only the SQL text and the
// positional params are exercised.
//
// MySQL-only syntax (WITH ROLLUP, ON DUPLICATE KEY UPDATE, DELETE ... USING,
// LIMIT on UPDATE/DELETE) is rejected by SQLite and reported by Check.
package store
