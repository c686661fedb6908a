package neoflux

import "fmt"

// CircularDependencyError is the panic value raised when a memo's compute
// function reads the memo itself, directly or through other memos. The
// graph must stay acyclic; a cycle would otherwise recurse until the stack
// overflows, so it is reported the moment the re-entrant read happens.
type CircularDependencyError struct {
	// NodeID is the memo that observed its own recomputation.
	NodeID uint64
	// Name is the memo's debug name, if one was set with WithName.
	Name string
}

func (e *CircularDependencyError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("neoflux: circular dependency: memo %q (node %d) reads itself during recompute", e.Name, e.NodeID)
	}
	return fmt.Sprintf("neoflux: circular dependency: memo node %d reads itself during recompute", e.NodeID)
}

// UpdateStormError is the panic value raised when a single flush schedules
// more work than maxFlushTasks. It means some effect keeps writing a
// signal it also reads without ever reaching a fixed point.
type UpdateStormError struct {
	// Ran is the number of effect runs completed before the guard fired.
	Ran int
}

func (e *UpdateStormError) Error() string {
	return fmt.Sprintf("neoflux: update storm: %d effect runs in one flush without settling; an effect is writing its own source", e.Ran)
}
