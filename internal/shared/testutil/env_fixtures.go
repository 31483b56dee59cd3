package testutil

import (
	"bpmsclient/internal/config"
)

// Environment loads a client environment from the defaults plus overrides
func Environment(overrides config.MapSource) config.Environment {
	return config.LoadEnvironment(overrides)
}

// InvalidEnvironment returns the default environment with the given required keys
// cleared, so Validate reports them missing.
func InvalidEnvironment(missing ...config.Key) config.Environment {
	env := config.LoadEnvironment(config.MapSource{})
	for _, key := range missing {
		switch key {
		case config.KeyAPIBaseURL:
			env.APIBaseURL = ""
		case config.KeyWebSocketURL:
			env.WebSocketURL = ""
		case config.KeyKeycloakURL:
			env.KeycloakURL = ""
		case config.KeyKeycloakRealm:
			env.KeycloakRealm = ""
		case config.KeyKeycloakClientID:
			env.KeycloakClientID = ""
		}
	}
	return env
}
