package cjs

import (
	"cjsflat/internal/ast"
	"cjsflat/internal/diag"
	"cjsflat/internal/modpath"
	"cjsflat/internal/source"
	"cjsflat/internal/uid"
)

const (
	nameExports  = "exports"
	nameModule   = "module"
	nameRequire  = "require"
	defaultProp  = "default"
	qModuleExp   = "module.exports"
	qRequireEns  = "require.ensure"
	qDefineAMD   = "define.amd"
	qModuleID    = "module.id"
	globalSuffix = "$$"
)

// Options configures Process for one file.
type Options struct {
	// Path is the file's module path; the zero Path disables namespace
	// initialisation and export rewriting.
	Path modpath.Path
	// Resolver resolves require() literals; nil names imports from the
	// literal alone.
	Resolver *modpath.Resolver
	// Registry tells which imported modules are not CommonJS.
	Registry *modpath.Registry
	Reporter diag.Reporter
	// IDs numbers the synthetic factory and iife labels. Share one
	// supplier between files processed together.
	IDs *uid.Supplier
	// ForceModule rewrites the file as a module even without exports.
	ForceModule bool
	// ExportTestFunctions keeps global test functions (test*, setUp, ...)
	// under their own names.
	ExportTestFunctions bool
	// Externs are ambient globals, e.g. "module" from a node externs file.
	Externs []string
}

// Result describes what Process did to the tree.
type Result struct {
	IsCommonJS bool
	IsModule   bool // CommonJS or forced
	ModuleName string
	// Initialized is false when the file had no module path.
	Initialized bool
	// Deleted and Changed list the spans of function literals removed or
	// modified while unwrapping UMD and IIFE wrappers.
	Deleted []source.Span
	Changed []source.Span
	// Iterations counts detector runs.
	Iterations int
	// Requires lists the resolved require() targets in order of first use.
	Requires []Require
}

// Require is one resolved import.
type Require struct {
	Literal string
	Path    modpath.Path
	Span    source.Span
}

// ExportInfo is one export site. Its scope is looked up again from Node
// after every mutation.
type ExportInfo struct {
	Node ast.NodeID
}

// UmdPattern is a guard conditional and the branch holding the CommonJS
// export; Branch is NoNode when the whole conditional should go.
type UmdPattern struct {
	Anchor ast.NodeID
	Branch ast.NodeID
}
