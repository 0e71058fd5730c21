// Package diag defines the diagnostic model shared by the lexer, the parser
// and the CommonJS rewriting pass.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string ID ("CJS3001"), a short Message, the Primary span and optional Notes.
// Some codes also carry a symbolic Name kept for compatibility with existing
// warning suppression lists.
//
// Producers talk to a Reporter. BagReporter collects into a Bag, which supports
// sorting, deduplication and filtering; DedupReporter drops exact repeats, which
// the rewriter relies on because it re-runs detection until the tree stops
// changing. Rendering lives in internal/diagfmt.
package diag
