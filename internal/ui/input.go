package ui

import (
	"strings"
	"unicode"
)

// FieldVariant is the visual state of a form control
type FieldVariant string

const (
	FieldDefault FieldVariant = "default"
	FieldError   FieldVariant = "error"
	FieldSuccess FieldVariant = "success"
)

const (
	fieldBase    = "w-full px-3 py-2 border rounded-lg focus:outline-none focus:ring-2 focus:ring-offset-0 transition-colors"
	labelClasses = "block text-sm font-medium text-secondary-700 mb-2"
	errorClasses = "mt-2 text-sm text-error-600"
	helpClasses  = "mt-2 text-sm text-secondary-500"
)

var fieldVariants = map[FieldVariant]string{
	FieldDefault: "border-secondary-300 focus:border-primary-500 focus:ring-primary-500",
	FieldError:   "border-error-300 focus:border-error-500 focus:ring-error-500",
	FieldSuccess: "border-success-300 focus:border-success-500 focus:ring-success-500",
}

// Field carries what Input and Textarea share
type Field struct {
	ID          string
	Name        string
	Label       string
	Value       string
	Placeholder string
	Error       string
	HelpText    string
	Variant     FieldVariant
	Required    bool
	Class       string
}

// EffectiveVariant is FieldError whenever Error is set, otherwise Variant
// (default when unset or unknown).
func (f Field) EffectiveVariant() FieldVariant {
	if f.Error != "" {
		return FieldError
	}
	if _, ok := fieldVariants[f.Variant]; ok {
		return f.Variant
	}
	return FieldDefault
}

// ShowHelp reports whether the help text is displayed; an error hides it
func (f Field) ShowHelp() bool {
	return f.HelpText != "" && f.Error == ""
}

func (f Field) controlID(prefix string) string {
	if f.ID != "" {
		return f.ID
	}
	for _, seed := range []string{f.Label, f.Name} {
		if slug := slugify(seed); slug != "" {
			return prefix + "-" + slug
		}
	}
	return prefix
}

func (f Field) classes(extra ...string) string {
	parts := append([]string{fieldBase, fieldVariants[f.EffectiveVariant()]}, extra...)
	return Classes(append(parts, f.Class)...)
}

// LabelClasses is the class list of the field label
func (Field) LabelClasses() string { return labelClasses }

// ErrorClasses is the class list of the error message
func (Field) ErrorClasses() string { return errorClasses }

// HelpClasses is the class list of the help text
func (Field) HelpClasses() string { return helpClasses }

// Input is a single-line text control
type Input struct {
	Field
	Type string
}

// InputID is the element id; without an explicit ID it is derived from the label
func (i Input) InputID() string { return i.controlID("input") }

// Classes returns the control's class list
func (i Input) Classes() string { return i.classes() }

// InputType is the type attribute, "text" unless set
func (i Input) InputType() string {
	if i.Type == "" {
		return "text"
	}
	return i.Type
}

// Textarea is a multi-line text control
type Textarea struct {
	Field
	Rows int
}

// InputID is the element id; without an explicit ID it is derived from the label
func (t Textarea) InputID() string { return t.controlID("textarea") }

// Classes returns the control's class list
func (t Textarea) Classes() string { return t.classes("resize-y") }

// RowCount is Rows, or 4 when unset
func (t Textarea) RowCount() int {
	if t.Rows <= 0 {
		return 4
	}
	return t.Rows
}

// slugify lowercases s and joins its letter/digit runs with '-'
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
