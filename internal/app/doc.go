// Package app wires the shell server together: server settings, the client
// environment and its startup gate, telemetry, services, the notification hub, the
// optional NATS bridge and the chi router.
//
// # Initialization Flow
//
//  1. Load server settings (BPMS_* variables, optional YAML file)
//  2. Resolve the client environment from VITE_* variables and dotenv files
//  3. Validate it; missing required keys abort only with strict startup
//  4. Initialize OpenTelemetry and the shell metrics
//  5. Create services, the hub and the bridge
//  6. Build the router and the HTTP server
//
// # Graceful Shutdown
//
// Stop shuts the HTTP server down within ShutdownTimeout, then stops the runtime
// collector, drains the NATS bridge, closes every socket and flushes telemetry.
// The package never calls os.Exit; the caller owns the process.
package app
