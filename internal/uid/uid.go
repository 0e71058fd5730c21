// Package uid hands out process-wide unique integers for generated labels
// and names (module$a_factory3, module$a_iife4).
package uid

import "sync/atomic"

// Supplier is safe for concurrent use; the zero value starts at 0.
type Supplier struct {
	next atomic.Int64
}

func New() *Supplier { return &Supplier{} }

// Next returns the next unused id.
func (s *Supplier) Next() int64 {
	return s.next.Add(1) - 1
}
