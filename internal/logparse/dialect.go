package logparse

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects one of the monitor line grammars.
type Dialect int

const (
	// DialectLegacy is the server format: `<ts> [<db> <ip>:<port>] "<cmd>" ...`.
	DialectLegacy Dialect = iota
	// DialectProxy is the proxy format: `<ts> [/<ip>:<port>] "<cmd>" ...`.
	DialectProxy
)

// legacyVersion is the only server version that selects DialectLegacy.
const legacyVersion = 2.6

func (d Dialect) String() string {
	switch d {
	case DialectLegacy:
		return "legacy"
	case DialectProxy:
		return "proxy"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// ParseDialect maps a configured server version to a dialect.
// Version 2.6 (numerically, so "2.60" counts) selects DialectLegacy and every
// other number selects DialectProxy. An empty version selects DialectLegacy.
func ParseDialect(version string) (Dialect, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return DialectLegacy, nil
	}
	v, err := strconv.ParseFloat(version, 64)
	if err != nil {
		return DialectLegacy, fmt.Errorf("invalid redis version %q: %w", version, err)
	}
	if v == legacyVersion {
		return DialectLegacy, nil
	}
	return DialectProxy, nil
}
