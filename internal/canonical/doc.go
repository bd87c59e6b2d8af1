// Package canonical writes deterministic JSON and content fingerprints for
// rendered statements.
//
// Output is byte-stable across runs: sorted keys, NFC strings and no HTML
// escaping. Golden files and the CLI depend on that.
package canonical
