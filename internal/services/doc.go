// Package services holds the shell's application logic between the HTTP handlers and
// the loaded configuration.
//
//   - ShellService builds the landing page view model, the public configuration
//     document and its ETag, the environment validation report and file size checks.
//   - NotificationService validates notifications and hands them to the realtime hub,
//     for both the HTTP API and the NATS bridge.
//   - HealthService answers liveness, readiness and version probes. The shell is ready
//     only while the client environment passes validation.
//
// Services receive their dependencies through constructors and log with the injected
// *slog.Logger.
package services
