// Package ui holds the typed presentation primitives of the shell page and the
// embedded html/template set that renders them.
//
// Components are plain structs. Their Classes methods compute the utility class list
// from the variant fields; templates only place the result. Container components
// (cards, sections, the main layout) are opened and closed by the page templates.
package ui
