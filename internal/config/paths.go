package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the directories the shell server reads from and writes to.
// All of them are relative to the executable, never the working directory.
type Paths struct {
	ExecutableDir string
	WebDir        string
	StaticDir     string
	LogsDir       string
	EnvFile       string
	LocalEnvFile  string
}

// GetPaths returns the application paths relative to the executable location
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return pathsFrom(filepath.Dir(exe)), nil
}

func pathsFrom(exeDir string) *Paths {
	// dist/
	//   ├── .env, .env.local   (client environment overrides)
	//   ├── logs/
	//   └── web/static/        (optional asset overrides)
	return &Paths{
		ExecutableDir: exeDir,
		WebDir:        filepath.Join(exeDir, "web"),
		StaticDir:     filepath.Join(exeDir, "web", "static"),
		LogsDir:       filepath.Join(exeDir, "logs"),
		EnvFile:       filepath.Join(exeDir, ".env"),
		LocalEnvFile:  filepath.Join(exeDir, ".env.local"),
	}
}

// EnsureDirectories creates the writable directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs the resolved paths
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("web", p.WebDir),
			slog.String("static", p.StaticDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("env_files",
			slog.String("env", p.EnvFile),
			slog.Bool("env_exists", FileExists(p.EnvFile)),
			slog.String("env_local", p.LocalEnvFile),
			slog.Bool("env_local_exists", FileExists(p.LocalEnvFile)),
		))
}
