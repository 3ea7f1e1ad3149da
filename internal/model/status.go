package model

// SessionState represents the lifecycle state of a download session
type SessionState string

const (
	// SessionStateIdle means the session was created but the worker has not started
	SessionStateIdle SessionState = "Idle"

	// SessionStateRunning means the worker is trying format queries
	SessionStateRunning SessionState = "Running"

	// SessionStateCompleted means the session produced an archive or the user declined to save it
	SessionStateCompleted SessionState = "Completed"

	// SessionStateFailed means the session ended without a usable result
	SessionStateFailed SessionState = "Failed"
)

// String returns the string representation of SessionState
func (s SessionState) String() string {
	return string(s)
}

// IsActive returns true while the worker owns the session
func (s SessionState) IsActive() bool {
	return s == SessionStateRunning
}

// IsFinished returns true if the session reached a terminal state
func (s SessionState) IsFinished() bool {
	return s == SessionStateCompleted || s == SessionStateFailed
}

// TaskStatus represents the status of an archive task
type TaskStatus string

const (
	// TaskStatusPending means the task is created but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusArchiving means files are being written into the archive
	TaskStatusArchiving TaskStatus = "Archiving"

	// TaskStatusCompleted means the archive was written successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusArchiving
}

// IsFinished returns true if the task is in a finished state (completed or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}
