package diag

import (
	"cmp"
	"slices"

	"cjsflat/internal/source"
)

// Bag collects the diagnostics of one file or run.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag holding at most limit diagnostics; limit <= 0
// means unlimited.
func NewBag(limit int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, min(max(limit, 16), 64)), max: limit}
}

// Add stores d unless the bag is full and reports whether it did.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) any(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity == sev })
}

// HasErrors reports an ERROR diagnostic.
func (b *Bag) HasErrors() bool { return b.any(SevError) }

// HasWarnings reports a WARNING diagnostic. Errors do not count.
func (b *Bag) HasWarnings() bool { return b.any(SevWarning) }

func (b *Bag) Len() int { return len(b.items) }

// Items returns the stored diagnostics. The slice is the bag's own;
// callers may edit elements in place but not append.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge appends everything from other. A limited bag grows its limit so
// nothing merged is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	if b.max > 0 {
		b.max = max(b.max, len(b.items))
	}
}

// Filter keeps diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(Diagnostic) bool) {
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool { return !keep(d) })
}

// Sort orders by file, start, end, then severity (errors first) and code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup drops later diagnostics with the same code, primary span and
// message as an earlier one.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
		msg  string
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary, d.Message}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
