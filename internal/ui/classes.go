package ui

import "strings"

// Classes joins the non-empty class fragments with single spaces
func Classes(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	return b.String()
}

// when returns class if cond holds, otherwise ""
func when(cond bool, class string) string {
	if cond {
		return class
	}
	return ""
}
