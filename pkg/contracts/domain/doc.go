// Package domain declares the shared data shapes of the business-process-management
// client: users and roles, process definitions and instances, tasks, analytics, the
// API response envelope and realtime messages. The shell server serves some of them
// (APIResponse, WebSocketMessage, NotificationMessage); the rest are exchanged with
// backends it does not implement and are kept here so Go consumers share one
// definition with the browser bundle.
package domain
