package symbols

import (
	"errors"
	"fmt"
)

// Validate walks the arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	for _, scope := range t.Scopes.Data() {
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scope.ID))
		}
		if scope.Parent == nil {
			if scope != t.global {
				errs = append(errs, fmt.Errorf("scope %d has no parent", scope.ID))
			}
		} else {
			found := false
			for _, child := range scope.Parent.Children {
				if child == scope {
					found = true
					break
				}
			}
			if !found {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scope.ID, scope.Parent.ID))
			}
		}
		if t.roots[scope.Root] != scope {
			errs = append(errs, fmt.Errorf("scope %d root %d not indexed", scope.ID, scope.Root))
		}
		for _, v := range scope.vars {
			if v.Scope != scope {
				errs = append(errs, fmt.Errorf("var %q listed in scope %d but owned by another", v.Name, scope.ID))
			}
		}
	}

	for _, v := range t.Vars.Data() {
		if v.Scope == nil {
			errs = append(errs, fmt.Errorf("var %d (%q) has no scope", v.ID, v.Name))
			continue
		}
		if v.Scope.Own(v.Name) != v {
			errs = append(errs, fmt.Errorf("var %d (%q) missing from scope %d index", v.ID, v.Name, v.Scope.ID))
		}
		if v.Kind == VarAmbient && v.Scope != t.global {
			errs = append(errs, fmt.Errorf("ambient var %q outside the global scope", v.Name))
		}
	}

	return errors.Join(errs...)
}
