package model

// TaskStatus represents the status of a download or translation task
type TaskStatus string

const (
	// TaskStatusIdle means the task was created but has not been scheduled
	TaskStatusIdle TaskStatus = "Idle"

	// TaskStatusPending means the task is queued behind the parallel limit
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusRunning means the task is being processed by its worker
	TaskStatusRunning TaskStatus = "Running"

	// TaskStatusCompleted means the task finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusFailed means the task stopped on an unrecoverable error
	TaskStatusFailed TaskStatus = "Failed"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if a worker currently owns the task
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusRunning
}

// IsFinished returns true if the task is in a terminal state (completed or failed)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusFailed
}

// CanTransition reports whether moving from ts to next is a legal step.
// Terminal states have no outgoing transitions.
func (ts TaskStatus) CanTransition(next TaskStatus) bool {
	switch ts {
	case TaskStatusIdle:
		return next == TaskStatusPending || next == TaskStatusRunning
	case TaskStatusPending:
		return next == TaskStatusRunning
	case TaskStatusRunning:
		return next == TaskStatusCompleted || next == TaskStatusFailed
	default:
		return false
	}
}
