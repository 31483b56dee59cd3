package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_FullName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"both", User{Username: "jd", FirstName: "Jane", LastName: "Doe"}, "Jane Doe"},
		{"first only", User{Username: "jd", FirstName: "Jane"}, "Jane"},
		{"last only", User{Username: "jd", LastName: "Doe"}, "Doe"},
		{"username fallback", User{Username: "jd"}, "jd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.FullName())
		})
	}
}

func TestUser_RolesAndPermissions(t *testing.T) {
	u := User{Roles: []Role{{
		Name:        "designer",
		Permissions: []Permission{{Action: "edit", Resource: "process"}},
	}}}

	assert.True(t, u.HasRole("designer"))
	assert.False(t, u.HasRole("admin"))
	assert.True(t, u.Can("edit", "process"))
	assert.False(t, u.Can("delete", "process"))
}

func TestTask_Overdue(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, Task{Status: TaskStatusAssigned, DueDate: &past}.IsOverdue(now))
	assert.False(t, Task{Status: TaskStatusAssigned, DueDate: &future}.IsOverdue(now))
	assert.False(t, Task{Status: TaskStatusCompleted, DueDate: &past}.IsOverdue(now))
	assert.False(t, Task{Status: TaskStatusCreated}.IsOverdue(now))
}

func TestQuickStatsFrom(t *testing.T) {
	stats := QuickStatsFrom(Analytics{
		ProcessMetrics: ProcessMetrics{ActiveInstances: 4, CompletedInstances: 9},
		TaskMetrics:    TaskMetrics{TotalTasks: 3, CompletedTasks: 5},
		UserMetrics:    UserMetrics{ActiveUsers: 2},
	})

	require.NotNil(t, stats.PendingTasks)
	assert.Equal(t, 4, *stats.ActiveProcesses)
	assert.Equal(t, 9, *stats.CompletedToday)
	assert.Equal(t, 0, *stats.PendingTasks)
	assert.Equal(t, 2, *stats.ActiveUsers)
}

func TestAPIResponse_JSON(t *testing.T) {
	ok, err := json.Marshal(OK(map[string]string{"a": "b"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"a":"b"}}`, string(ok))

	fail, err := json.Marshal(Fail[struct{}]("NOT_FOUND", "missing"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"code":"NOT_FOUND","message":"missing"}}`, string(fail))
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, 3, NewPagination(1, 10, 21).TotalPages)
	assert.Equal(t, 2, NewPagination(1, 10, 20).TotalPages)
	assert.Equal(t, 0, NewPagination(1, 0, 20).TotalPages)
}

func TestNotificationMessage_Broadcast(t *testing.T) {
	assert.True(t, NotificationMessage{}.Broadcast())
	assert.False(t, NotificationMessage{UserID: "u1"}.Broadcast())
}
