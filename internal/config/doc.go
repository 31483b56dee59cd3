// Package config provides configuration for the BPMS client shell. It covers two
// separate sets of values: the server settings of the shell itself, and the client
// environment that is handed to the browser bundle.
//
// # Client Environment
//
// The client environment is a typed record with one field per recognized key. It is
// built once at startup from a Source and passed to every consumer:
//
//	src, err := config.DefaultSource(".env", ".env.local")
//	if err != nil {
//	    return err
//	}
//	env := config.LoadEnvironment(src)
//
// Keys are read from the process environment with the VITE_ prefix
// (VITE_API_BASE_URL, VITE_KEYCLOAK_REALM, ...) and fall back to dotenv files.
// Absent or empty values take their defaults, flags are true only for the exact
// string "true", and numbers that fail to parse keep their default. Loading never fails.
//
// # Validation
//
// Five keys are required: API_BASE_URL, WEBSOCKET_URL, KEYCLOAK_URL, KEYCLOAK_REALM and
// KEYCLOAK_CLIENT_ID. Validate returns the missing ones as a value so the caller can
// choose between aborting and logging:
//
//	if v := env.Validate(); !v.OK() {
//	    logger.Error("environment validation failed", slog.String("error", v.Err().Error()))
//	}
//
// Warnings adds non-fatal format checks (URL syntax, theme names, positive limits).
//
// # Server Settings
//
// Server settings use the BPMS_* prefix and may also come from a YAML file:
//
//	BPMS_SERVER_PORT=3000
//	BPMS_LOGGING_LEVEL=debug
//	BPMS_STARTUP_STRICT_ENVIRONMENT=true
//	BPMS_STARTUP_DOTENV_FILES=.env,.env.production
//
// Environment variables take precedence over the file, which takes precedence over
// the defaults.
package config
