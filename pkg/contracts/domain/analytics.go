package domain

import "time"

// Analytics is the dashboard payload of the analytics backend
type Analytics struct {
	ProcessMetrics ProcessMetrics `json:"processMetrics"`
	TaskMetrics    TaskMetrics    `json:"taskMetrics"`
	UserMetrics    UserMetrics    `json:"userMetrics"`
	SystemMetrics  SystemMetrics  `json:"systemMetrics"`
}

type ProcessMetrics struct {
	TotalProcesses        int                  `json:"totalProcesses"`
	ActiveInstances       int                  `json:"activeInstances"`
	CompletedInstances    int                  `json:"completedInstances"`
	AverageCompletionTime float64              `json:"averageCompletionTime"`
	ProcessPerformance    []ProcessPerformance `json:"processPerformance"`
}

type ProcessPerformance struct {
	ProcessID     string  `json:"processId"`
	ProcessName   string  `json:"processName"`
	InstanceCount int     `json:"instanceCount"`
	AverageTime   float64 `json:"averageTime"`
	SuccessRate   float64 `json:"successRate"`
}

type TaskMetrics struct {
	TotalTasks            int                `json:"totalTasks"`
	CompletedTasks        int                `json:"completedTasks"`
	OverdueTasks          int                `json:"overdueTasks"`
	AverageCompletionTime float64            `json:"averageCompletionTime"`
	TaskDistribution      []TaskDistribution `json:"taskDistribution"`
}

type TaskDistribution struct {
	Assignee    string  `json:"assignee"`
	TaskCount   int     `json:"taskCount"`
	AverageTime float64 `json:"averageTime"`
}

type UserMetrics struct {
	TotalUsers   int            `json:"totalUsers"`
	ActiveUsers  int            `json:"activeUsers"`
	UserActivity []UserActivity `json:"userActivity"`
}

type UserActivity struct {
	UserID           string    `json:"userId"`
	Username         string    `json:"username"`
	TasksCompleted   int       `json:"tasksCompleted"`
	ProcessesStarted int       `json:"processesStarted"`
	LastActive       time.Time `json:"lastActive"`
}

// SystemMetrics are load figures reported by the backend
type SystemMetrics struct {
	SystemLoad        float64 `json:"systemLoad"`
	MemoryUsage       float64 `json:"memoryUsage"`
	ActiveConnections int     `json:"activeConnections"`
	ResponseTime      float64 `json:"responseTime"`
}

// QuickStats are the four figures on the home page. A nil field has no data source yet
// and renders as a placeholder.
type QuickStats struct {
	ActiveProcesses *int `json:"activeProcesses"`
	CompletedToday  *int `json:"completedToday"`
	PendingTasks    *int `json:"pendingTasks"`
	ActiveUsers     *int `json:"activeUsers"`
}

// QuickStatsFrom derives the home page figures from a dashboard payload
func QuickStatsFrom(a Analytics) QuickStats {
	active := a.ProcessMetrics.ActiveInstances
	completed := a.ProcessMetrics.CompletedInstances
	pending := a.TaskMetrics.TotalTasks - a.TaskMetrics.CompletedTasks
	if pending < 0 {
		pending = 0
	}
	users := a.UserMetrics.ActiveUsers
	return QuickStats{
		ActiveProcesses: &active,
		CompletedToday:  &completed,
		PendingTasks:    &pending,
		ActiveUsers:     &users,
	}
}
