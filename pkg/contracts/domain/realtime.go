package domain

import "time"

// Realtime message types carried in WebSocketMessage.Type
const (
	MessageTypeNotification = "notification"
	MessageTypeConnected    = "connected"
	MessageTypePong         = "pong"
)

// WebSocketMessage is the envelope of every frame sent to browsers
type WebSocketMessage struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationType is the severity shown by the browser toast
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// NotificationMessage is a user-facing notification. An empty UserID addresses every
// connected user.
type NotificationMessage struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type" validate:"required,oneof=info success warning error"`
	Title     string           `json:"title" validate:"required,max=200"`
	Message   string           `json:"message" validate:"required,max=2000"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
	UserID    string           `json:"userId,omitempty"`
}

// Broadcast reports whether the notification targets every user
func (n NotificationMessage) Broadcast() bool {
	return n.UserID == ""
}
