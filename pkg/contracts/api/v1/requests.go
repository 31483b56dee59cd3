// Package api contains the request and response bodies of the shell's JSON API.
package api

import "bpmsclient/pkg/contracts/domain"

// FileCheckRequest asks whether a file of Size bytes may be uploaded
type FileCheckRequest struct {
	Name string `json:"name" validate:"required,filename"`
	Size int64  `json:"size" validate:"gte=0"`
}

// FileCheckResponse answers a FileCheckRequest
type FileCheckResponse struct {
	Name             string `json:"name"`
	Valid            bool   `json:"valid"`
	Size             int64  `json:"size"`
	FormattedSize    string `json:"formatted_size"`
	MaxSize          int64  `json:"max_size"`
	FormattedMaxSize string `json:"formatted_max_size"`
}

// ClientLogRequest is one log entry posted by the browser bundle
type ClientLogRequest struct {
	Level   string         `json:"level" validate:"omitempty,oneof=debug info warn error"`
	Message string         `json:"message" validate:"required,max=4096"`
	Data    map[string]any `json:"data,omitempty"`
	Source  string         `json:"source,omitempty" validate:"max=256"`
}

// ValidationResponse reports the state of the client environment
type ValidationResponse struct {
	Valid    bool     `json:"valid"`
	Missing  []string `json:"missing"`
	Warnings []string `json:"warnings"`
}

// NotificationRequest is the body of POST /api/notifications
type NotificationRequest struct {
	Type    domain.NotificationType `json:"type" validate:"required,oneof=info success warning error"`
	Title   string                  `json:"title" validate:"required,max=200"`
	Message string                  `json:"message" validate:"required,max=2000"`
	UserID  string                  `json:"userId,omitempty" validate:"max=128"`
}

// NotificationAccepted acknowledges a broadcast
type NotificationAccepted struct {
	ID         string `json:"id"`
	Recipients int    `json:"recipients"`
}
