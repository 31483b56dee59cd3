package ui

import "html/template"

// Feature is one card in the feature grid
type Feature struct {
	Title       CardTitle
	Description string
	Action      Button
}

// Stat is one figure of the quick stats card
type Stat struct {
	Label string
	Value string
	Class string
}

// HomePage is the view model of the shell's landing page
type HomePage struct {
	Lang        string
	Theme       string
	AppName     string
	AppVersion  string
	Environment string

	HeaderActions []Button
	Header        PageHeader

	FeatureCard Card
	Features    []Feature

	StatsCard  Card
	StatsTitle CardTitle
	Stats      []Stat

	// Missing lists required environment keys without a value; the page shows a
	// configuration warning when non-empty.
	Missing []string

	// ConfigJSON is the public configuration for the browser bundle. It must be
	// encoding/json output, which escapes <, > and &.
	ConfigJSON template.JS
}

// ThemeClass is the class set on <html>
func (p HomePage) ThemeClass() string {
	if p.Theme == "" {
		return "theme-light"
	}
	return "theme-" + p.Theme
}
