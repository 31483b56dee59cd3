// Package shared holds helpers used by more than one package of the shell.
//
// The testutil subpackage provides a capturing slog handler and ready-made client
// environments for tests:
//
//	logger, logs := testutil.NewTestLogger(t)
//	env := testutil.Environment(config.MapSource{config.KeyEnableDebugMode: "true"})
//
// Nothing here may import application packages other than internal/config.
package shared
