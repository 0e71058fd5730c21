// Package jsdoc parses the subset of JSDoc the CommonJS rewriter cares
// about: the @const marker and type expressions inside {braces}.
//
// Type expressions are kept as text split into parts; parts that name a
// type ("foo.Bar", "./lib/a.Type") are marked so that the rewriter can rename
// them in place. Everything else in the comment survives verbatim.
package jsdoc
