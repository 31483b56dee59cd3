// Package http implements the shell's HTTP handlers. Handlers stay thin: they decode
// and validate requests, call a service, and render JSON with go-chi/render.
//
// Errors are rendered as RFC 7807 problem details by errors.ErrorHandler:
//
//	{
//	    "type": "/errors/environment/missing-required",
//	    "title": "Environment Invalid",
//	    "status": 503,
//	    "detail": "Missing required environment variables: API_BASE_URL",
//	    "instance": "/api/config/validation"
//	}
//
// The notification socket lives in the websocket package; NotificationHandler only
// accepts server-side publishes.
package http
