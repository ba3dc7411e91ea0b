package engine

import "strings"

// matchFilter reports whether a full case name is selected by the filter
// expression: patterns joined by ':', each one negative when it starts with
// '-'. A name matching any negative pattern is excluded; otherwise it is
// selected when it matches any positive pattern, or when there are no
// positive patterns at all.
func matchFilter(filter, name string) bool {
	if filter == "" {
		return true
	}
	positives := 0
	matched := false
	for _, pat := range strings.Split(filter, ":") {
		if pat == "" {
			continue
		}
		if pat[0] == '-' {
			if matchPattern(pat[1:], name) {
				return false
			}
			continue
		}
		positives++
		if matchPattern(pat, name) {
			matched = true
		}
	}
	return positives == 0 || matched
}

// matchPattern matches a single pattern against the whole name. '?' matches
// any one byte and '*' any run of bytes, including none.
func matchPattern(pat, s string) bool {
	for len(pat) > 0 {
		switch pat[0] {
		case '*':
			rest := pat[1:]
			for i := 0; i <= len(s); i++ {
				if matchPattern(rest, s[i:]) {
					return true
				}
			}
			return false
		case '?':
			if len(s) == 0 {
				return false
			}
		default:
			if len(s) == 0 || s[0] != pat[0] {
				return false
			}
		}
		pat, s = pat[1:], s[1:]
	}
	return len(s) == 0
}
