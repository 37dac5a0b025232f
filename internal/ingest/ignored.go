package ingest

import "strings"

// IgnoredSet holds upper-cased command names that are not counted.
type IgnoredSet map[string]struct{}

// ParseIgnoredCommands builds an IgnoredSet from a comma-separated list such as "PING, info".
func ParseIgnoredCommands(list string) IgnoredSet {
	set := make(IgnoredSet)
	for _, tok := range strings.Split(list, ",") {
		tok = strings.ToUpper(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// Contains reports whether command is ignored, regardless of its case.
func (s IgnoredSet) Contains(command string) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[strings.ToUpper(command)]
	return ok
}
