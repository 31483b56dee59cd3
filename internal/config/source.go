package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ClientEnvPrefix is prepended to every Key when reading the process environment,
// matching the names the browser bundle was built with (VITE_API_BASE_URL, ...).
const ClientEnvPrefix = "VITE_"

// Source supplies raw values for client environment keys
type Source interface {
	Lookup(key Key) (string, bool)
}

// MapSource is a Source backed by a plain map keyed by unprefixed names
type MapSource map[Key]string

// Lookup implements Source
func (m MapSource) Lookup(key Key) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// ProcessSource reads keys from the process environment as Prefix+key
type ProcessSource struct {
	Prefix string
	// lookupEnv is swapped in tests
	lookupEnv func(string) (string, bool)
}

// NewProcessSource returns a ProcessSource using the VITE_ prefix
func NewProcessSource() ProcessSource {
	return ProcessSource{Prefix: ClientEnvPrefix}
}

// Lookup implements Source
func (p ProcessSource) Lookup(key Key) (string, bool) {
	lookup := p.lookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return lookup(p.Prefix + string(key))
}

// LayeredSource consults its sources in order and returns the first non-empty value.
// An empty value in an earlier layer does not hide a value in a later one.
type LayeredSource []Source

// Layered builds a LayeredSource, skipping nil entries
func Layered(sources ...Source) LayeredSource {
	out := make(LayeredSource, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Lookup implements Source
func (l LayeredSource) Lookup(key Key) (string, bool) {
	found := false
	for _, s := range l {
		v, ok := s.Lookup(key)
		if !ok {
			continue
		}
		found = true
		if v != "" {
			return v, true
		}
	}
	return "", found
}

// LoadDotEnv reads .env style files into a MapSource. Names are expected with the
// VITE_ prefix; unprefixed names that match a known Key are accepted too. Later files
// override earlier ones and files that do not exist are skipped.
func LoadDotEnv(paths ...string) (MapSource, error) {
	known := make(map[Key]bool, len(Keys))
	for _, k := range Keys {
		known[k] = true
	}

	out := MapSource{}
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
		for name, value := range values {
			key := Key(strings.TrimPrefix(name, ClientEnvPrefix))
			if !known[key] {
				continue
			}
			out[key] = value
		}
	}
	return out, nil
}

// DefaultSource layers the process environment over the given dotenv files, the way
// the client build resolved VITE_* variables.
func DefaultSource(dotEnvFiles ...string) (Source, error) {
	fileValues, err := LoadDotEnv(dotEnvFiles...)
	if err != nil {
		return nil, err
	}
	return Layered(NewProcessSource(), fileValues), nil
}
