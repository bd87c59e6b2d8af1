// Package operand models the values a condition binds.
//
// A Bound operand becomes one "?" placeholder and one entry in the parameter
// stream. A Raw operand is spliced into the SQL text verbatim; it adds no
// placeholder of its own but still contributes its nested params at the
// position it occupies. Flatten turns a mixed operand list into the ordered
// Param stream that lines up with the rendered text.
//
// Type tags are single characters consumed by an external binding API
// (mysqli uses i, d, s, b). This package only carries and aligns them.
package operand
