package modpath

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ModulePrefix starts every canonical module name.
const ModulePrefix = "module$"

// Path is a root-relative, slash-separated module file path such as
// "lib/a.js". The zero value means "no module path".
type Path struct {
	p string
}

// NewPath normalises p: NFC, forward slashes, cleaned, no leading "./" or "/".
func NewPath(p string) Path {
	p = norm.NFC.String(strings.ReplaceAll(p, "\\", "/"))
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "/")
	if p == "." {
		p = ""
	}
	return Path{p: p}
}

func (p Path) String() string { return p.p }
func (p Path) IsZero() bool   { return p.p == "" }

// Dir returns the directory part, "" for top-level files.
func (p Path) Dir() string {
	d := path.Dir(p.p)
	if d == "." {
		return ""
	}
	return d
}

// ModuleName returns the canonical namespace identifier, e.g.
// "lib/a.js" -> "module$lib$a".
func (p Path) ModuleName() string {
	if p.IsZero() {
		return ""
	}
	return ModulePrefix + toIdentifier(strings.TrimSuffix(p.p, ".js"))
}

// ForFile derives a best-effort module name from an import literal that
// could not be resolved to a known file.
func ForFile(literal string) string {
	p := NewPath(literal).p
	for strings.HasPrefix(p, "../") {
		p = p[3:]
	}
	if p == ".." {
		p = ""
	}
	return ModulePrefix + toIdentifier(strings.TrimSuffix(p, ".js"))
}

// toIdentifier turns a slash path into identifier characters: '/' becomes
// '$', anything else that cannot appear in an identifier becomes '_'.
func toIdentifier(p string) string {
	var b strings.Builder
	b.Grow(len(p))
	for _, r := range p {
		switch {
		case r == '/':
			b.WriteByte('$')
		case r == '$' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// IsPathIdentifier reports type names that are module paths ("./a.Foo").
func IsPathIdentifier(name string) bool {
	return strings.Contains(name, "/")
}

// IsRelative reports "./x" and "../x" literals.
func IsRelative(literal string) bool {
	return strings.HasPrefix(literal, "./") || strings.HasPrefix(literal, "../")
}
