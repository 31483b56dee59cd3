package ui

import "html/template"

// MainLayout frames the page. Header, Sidebar and Footer are optional pre-rendered
// fragments; empty ones are omitted entirely.
type MainLayout struct {
	Header  template.HTML
	Sidebar template.HTML
	Footer  template.HTML
	Content template.HTML
	Class   string
}

// Classes returns the outer container's class list
func (l MainLayout) Classes() string {
	return Classes("min-h-screen bg-secondary-50", l.Class)
}

// MainClasses returns the <main> class list; a sidebar shifts the content
func (l MainLayout) MainClasses() string {
	return Classes("flex-1", when(l.Sidebar != "", "lg:ml-64"))
}

// PageHeader is the page title block
type PageHeader struct {
	Title    string
	Subtitle string
	Actions  []Button
	Class    string
}

// Classes returns the header's class list
func (h PageHeader) Classes() string {
	return Classes("mb-8", h.Class)
}

// ContentSection is a titled block of page content
type ContentSection struct {
	Title       string
	Description string
	Actions     []Button
	Content     template.HTML
	Class       string
}

// Classes returns the section's class list
func (s ContentSection) Classes() string {
	return Classes("mb-8", s.Class)
}

// HasHeading reports whether the heading row is rendered
func (s ContentSection) HasHeading() bool {
	return s.Title != "" || s.Description != "" || len(s.Actions) > 0
}
