package domain

import "time"

// TaskStatus is the lifecycle state of a user task
type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "created"
	TaskStatusAssigned   TaskStatus = "assigned"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskPriority orders tasks in inboxes
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Task is a unit of human work inside a process instance
type Task struct {
	ID                string         `json:"id"`
	ProcessInstanceID string         `json:"processInstanceId"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	Assignee          string         `json:"assignee,omitempty"`
	CandidateUsers    []string       `json:"candidateUsers"`
	CandidateGroups   []string       `json:"candidateGroups"`
	Status            TaskStatus     `json:"status"`
	Priority          TaskPriority   `json:"priority"`
	DueDate           *time.Time     `json:"dueDate,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	FormData          map[string]any `json:"formData,omitempty"`
	FormSchema        *FormSchema    `json:"formSchema,omitempty"`
}

// IsOpen reports whether the task still awaits work
func (t Task) IsOpen() bool {
	return t.Status != TaskStatusCompleted && t.Status != TaskStatusCancelled
}

// IsOverdue reports whether an open task is past its due date at now
func (t Task) IsOverdue(now time.Time) bool {
	return t.IsOpen() && t.DueDate != nil && now.After(*t.DueDate)
}
