// Package ast is the JavaScript syntax tree shared by the parser, the
// printer, scope analysis and the CommonJS rewriter.
//
// Nodes live in an arena owned by a Tree and are addressed by NodeID (0 is
// NoNode). Children are an ordered first-child / next-sibling chain with
// parent links, so the rewriter can splice statements in place. Every
// mutation goes through Tree methods; a node slated for insertion must be
// detached first, the methods panic otherwise.
//
// Shapes follow the classic Closure/Rhino layout, e.g. GETPROP has a single
// child (the object) and keeps the property name in Str, VAR has NAME
// children that carry their initializer as first child, and every if/loop
// body is a BLOCK.
package ast
