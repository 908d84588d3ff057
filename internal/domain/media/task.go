package media

// TaskStatus describes where a task is in its lifecycle.
type TaskStatus string

const (
	StatusStarting   TaskStatus = "starting"
	StatusProcessing TaskStatus = "processing"
	StatusCompleted  TaskStatus = "completed"
	StatusError      TaskStatus = "error"
)

// IsTerminal reports whether no further transitions are allowed.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// CanTransition reports whether moving from s to next keeps the lifecycle
// strictly forward. Repeated processing writes are allowed since each step
// publishes its own progress.
func (s TaskStatus) CanTransition(next TaskStatus) bool {
	switch s {
	case StatusStarting:
		return next == StatusProcessing || next == StatusError
	case StatusProcessing:
		return next == StatusProcessing || next == StatusCompleted || next == StatusError
	default:
		return false
	}
}

// TaskRecord is the pollable view of a task.
type TaskRecord struct {
	Progress int        `json:"progress"`
	Status   TaskStatus `json:"status"`
	Message  string     `json:"message"`
}

// StartingRecord is written when a submission is accepted.
func StartingRecord() TaskRecord {
	return TaskRecord{Progress: 0, Status: StatusStarting, Message: "Starting processing..."}
}

// CompletedRecord is written once every step succeeded.
func CompletedRecord() TaskRecord {
	return TaskRecord{Progress: 100, Status: StatusCompleted, Message: "Processing completed"}
}
