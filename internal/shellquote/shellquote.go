// Package shellquote quotes arguments for POSIX shells.
package shellquote

import "strings"

// Quote wraps s in single quotes, escaping any internal single quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteIfNeeded quotes strings that a shell would split or interpret:
// whitespace, globbing, substitution and history characters.
func QuoteIfNeeded(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, " \t\n#[]()|!\"'$`*?&;<>~\\") {
		return Quote(s)
	}
	return s
}
