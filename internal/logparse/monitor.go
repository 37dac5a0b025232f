package logparse

import (
	"regexp"
	"strconv"

	"github.com/tinytelemetry/faina/internal/model"
)

// keyPattern accepts backslash escapes so `\"` does not close the key.
const keyPattern = `(?:[^"\\]|\\.)+`

// LegacyRegex matches server monitor lines that carry a db index and client port.
var LegacyRegex = regexp.MustCompile(
	`^([\d.]+)\s\[(\d+)\s(\d+\.\d+\.\d+\.\d+):(\d+)\]\s"(\w+)"(?:\s"(` + keyPattern + `)")?(?:\s(.+))?$`)

// ProxyRegex matches proxy monitor lines. The client port is matched but not captured.
var ProxyRegex = regexp.MustCompile(
	`^([\d.]+)\s\[/(\d+\.\d+\.\d+\.\d+):\d+\]\s"(\w+)"(?:\s"(` + keyPattern + `)")?(?:\s(.+))?$`)

// Parser extracts a structured entry from one monitor line.
type Parser interface {
	Dialect() Dialect
	Parse(line string) (model.Entry, bool)
}

// NewParser returns the parser for a dialect.
func NewParser(d Dialect) Parser {
	if d == DialectProxy {
		return proxyParser{}
	}
	return legacyParser{}
}

// IsIdle reports whether line is the bare OK reply the server sends when
// MONITOR starts. It is neither an entry nor a malformed line.
func IsIdle(line string) bool {
	return line == model.IdleMarker
}

type legacyParser struct{}

func (legacyParser) Dialect() Dialect { return DialectLegacy }

func (legacyParser) Parse(line string) (model.Entry, bool) {
	m := LegacyRegex.FindStringSubmatch(line)
	if m == nil {
		return model.Entry{}, false
	}
	entry := model.Entry{
		Timestamp: m[1],
		Client:    m[3],
		Port:      m[4],
		Command:   m[5],
		Key:       m[6],
		Args:      m[7],
	}
	if db, err := strconv.Atoi(m[2]); err == nil {
		entry.DB = db
		entry.HasDB = true
	}
	return entry, true
}

type proxyParser struct{}

func (proxyParser) Dialect() Dialect { return DialectProxy }

func (proxyParser) Parse(line string) (model.Entry, bool) {
	m := ProxyRegex.FindStringSubmatch(line)
	if m == nil {
		return model.Entry{}, false
	}
	return model.Entry{
		Timestamp: m[1],
		Client:    m[2],
		Command:   m[3],
		Key:       m[4],
		Args:      m[5],
	}, true
}
