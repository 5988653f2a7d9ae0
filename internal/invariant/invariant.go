// Package invariant provides a single assertion helper for the internal
// numerical/structural invariants the core relies on (clustering
// balance, non-empty beam frontier, binary-tree completeness). A
// violation indicates a bug, not a caller mistake, so it panics with a
// domain.DomainError carrying ErrCodeNumerical; callers at the service
// boundary recover it back into a normal error return.
package invariant

import "github.com/parabel-ml/parabel/domain"

// Assert panics with a Numerical DomainError if cond is false.
func Assert(cond bool, msg string) {
	if !cond {
		panic(domain.NewNumericalError(msg, nil))
	}
}
