// Package entity contains the core business objects of the project.
package entity

// Priority represents the urgency level of a task.
type Priority string

const (
	// PriorityLow indicates a low-urgency task.
	PriorityLow Priority = "low"
	// PriorityMedium indicates a normal task. This is the default.
	PriorityMedium Priority = "medium"
	// PriorityHigh indicates an important task.
	PriorityHigh Priority = "high"
	// PriorityCritical indicates a task that must not be missed.
	PriorityCritical Priority = "critical"
)

// String returns the string representation of the Priority.
func (p Priority) String() string {
	return string(p)
}

// IsValid checks if the Priority is a valid value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// NormalizePriority maps unknown or empty values to the default priority.
func NormalizePriority(raw string) Priority {
	p := Priority(raw)
	if !p.IsValid() {
		return PriorityMedium
	}

	return p
}
