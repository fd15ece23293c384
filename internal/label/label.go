// Package label implements the 4-state display taxonomy and its derivation
// from the legacy status/priority pair.
package label

import "github.com/pressplan/pressplan/internal/models"

// Taxonomy members, in calendar display order.
const (
	InApproval       = "in_approval"
	ToDo             = "to_do"
	ReadyUnpublished = "ready_unpublished"
	Done             = "done"
)

// Status values for ScheduledItem.Status. Status is the authoritative
// completion flag; label Done and status done must always agree.
const (
	StatusTodo = "todo"
	StatusDone = "done"
)

// Legacy priority values, still present on rows predating the label column.
const (
	PriorityUrgent    = "urgent"
	PriorityMedium    = "medium"
	PriorityNotUrgent = "not_urgent"
)

// All lists the taxonomy members in display order.
var All = []string{InApproval, ToDo, ReadyUnpublished, Done}

// Valid reports whether l is a taxonomy member.
func Valid(l string) bool {
	switch l {
	case InApproval, ToDo, ReadyUnpublished, Done:
		return true
	}
	return false
}

// Source is the tagged origin of a display label: either an explicit taxonomy
// member, or the legacy status/priority pair it must be derived from.
type Source struct {
	explicit string
	status   string
	priority string
}

// Explicit builds a Source from a stored label value.
func Explicit(l string) Source {
	return Source{explicit: l}
}

// Derived builds a Source from the legacy status/priority pair. A nil
// priority means the row predates the priority column too.
func Derived(status string, priority *string) Source {
	s := Source{status: status}
	if priority != nil {
		s.priority = *priority
	}
	return s
}

// Resolve maps a Source to a taxonomy member. An explicit valid label wins;
// otherwise a done status resolves to Done, and the legacy priority decides
// between the three remaining states.
func (s Source) Resolve() string {
	if Valid(s.explicit) {
		return s.explicit
	}
	if s.status == StatusDone {
		return Done
	}
	switch s.priority {
	case PriorityUrgent:
		return InApproval
	case PriorityNotUrgent:
		return ReadyUnpublished
	}
	return ToDo
}

// Effective resolves the display label for an item. Applied identically
// everywhere a label is shown or captured for undo, so rows predating the
// label column render correctly without migration.
func Effective(it *models.ScheduledItem) string {
	if it.Label != nil && Valid(*it.Label) {
		return Explicit(*it.Label).Resolve()
	}
	return Derived(it.Status, it.Priority).Resolve()
}
