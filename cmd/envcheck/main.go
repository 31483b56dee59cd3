// Command envcheck loads the client environment the way the shell server does,
// prints the effective values and exits non-zero when required keys are missing.
//
//	envcheck [-json] [-explicit] [-env-files .env,.env.local] [-no-color]
//
// With -explicit a required key that fell back to its built-in default counts as
// missing, which catches deployments still pointing at localhost.
//
// Exit codes: 0 valid, 1 required keys missing, 2 usage or read error.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"

	"bpmsclient/internal/config"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

// report is the -json output
type report struct {
	Valid     bool                  `json:"valid"`
	Missing   []string              `json:"missing"`
	Warnings  []config.Warning      `json:"warnings"`
	Values    map[string]string     `json:"values"`
	Defaulted []string              `json:"defaulted"`
	Rejected  map[config.Key]string `json:"rejected,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, nil))
}

// run executes the command. src replaces the process + dotenv source when non-nil.
func run(args []string, stdout, stderr io.Writer, src config.Source) int {
	fs := flag.NewFlagSet("envcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print a machine readable report")
	envFiles := fs.String("env-files", ".env,.env.local", "comma separated dotenv files, later files win")
	noColor := fs.Bool("no-color", false, "disable colored output")
	explicit := fs.Bool("explicit", false, "require every required key to be set explicitly")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "envcheck: unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return exitUsage
	}

	if src == nil {
		var err error
		src, err = config.DefaultSource(splitList(*envFiles)...)
		if err != nil {
			fmt.Fprintf(stderr, "envcheck: %v\n", err)
			return exitUsage
		}
	}

	env, load := config.LoadEnvironmentWithReport(src)
	validation := env.Validate()
	if *explicit {
		validation.Missing = defaultedRequired(validation.Missing, load.Defaulted)
	}

	r := report{
		Valid:     validation.OK(),
		Missing:   keyStrings(validation.Missing),
		Warnings:  env.Warnings(),
		Values:    make(map[string]string, len(config.Keys)),
		Defaulted: keyStrings(load.Defaulted),
		Rejected:  load.Rejected,
	}
	if r.Warnings == nil {
		r.Warnings = []config.Warning{}
	}
	for _, k := range config.Keys {
		r.Values[string(k)] = env.Value(k)
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			fmt.Fprintf(stderr, "envcheck: %v\n", err)
			return exitUsage
		}
	} else {
		p := printer{w: stdout, color: !*noColor && isTerminal(stdout)}
		p.text(r)
	}

	if !r.Valid {
		return exitInvalid
	}
	return exitOK
}

type printer struct {
	w     io.Writer
	color bool
}

func (p printer) paint(color, s string) string {
	if !p.color {
		return s
	}
	return color + s + colorReset
}

func (p printer) text(r report) {
	for _, k := range config.Keys {
		line := fmt.Sprintf("%-30s %s", k, r.Values[string(k)])
		if slices.Contains(r.Defaulted, string(k)) {
			line += p.paint(colorDim, " (default)")
		}
		fmt.Fprintln(p.w, line)
	}
	fmt.Fprintln(p.w)

	for k, v := range r.Rejected {
		fmt.Fprintln(p.w, p.paint(colorYellow, fmt.Sprintf("ignored %s=%q: not a number", k, v)))
	}
	for _, w := range r.Warnings {
		fmt.Fprintln(p.w, p.paint(colorYellow, fmt.Sprintf("warning: %s %s", w.Key, w.Message)))
	}

	if r.Valid {
		fmt.Fprintln(p.w, p.paint(colorGreen, "environment OK"))
		return
	}
	fmt.Fprintln(p.w, p.paint(colorRed, "Missing required environment variables: "+strings.Join(r.Missing, ", ")))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// defaultedRequired adds the required keys found in defaulted to missing, keeping
// the RequiredKeys order
func defaultedRequired(missing, defaulted []config.Key) []config.Key {
	var out []config.Key
	for _, k := range config.RequiredKeys {
		if slices.Contains(missing, k) || slices.Contains(defaulted, k) {
			out = append(out, k)
		}
	}
	return out
}

func keyStrings(keys []config.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
