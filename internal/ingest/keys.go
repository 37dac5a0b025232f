package ingest

import (
	"context"
	"regexp"
	"strings"

	"github.com/tinytelemetry/faina/internal/model"
	"github.com/tinytelemetry/faina/internal/resolve"
)

// longDigitRun matches numeric ids worth collapsing. Shorter runs such as
// page or shard indices are kept as part of the key.
var longDigitRun = regexp.MustCompile(`\d{4,}`)

// NormalizeKey replaces every run of four or more digits with a single "#".
func NormalizeKey(key string) string {
	return longDigitRun.ReplaceAllLiteralString(key, model.KeyPlaceholder)
}

// KeyFormatter builds the label a key is counted under:
// normalized key, "@", client host, and optionally ":" and client port.
type KeyFormatter struct {
	attributor resolve.Attributor
	withPort   bool
}

// NewKeyFormatter creates a formatter. A nil attributor attributes keys to the raw address.
func NewKeyFormatter(attributor resolve.Attributor, withPort bool) *KeyFormatter {
	if attributor == nil {
		attributor = resolve.RawIP{}
	}
	return &KeyFormatter{attributor: attributor, withPort: withPort}
}

// Format returns the attributed label for key sent by ip:port.
// The port suffix is only added when the dialect captured a port.
func (f *KeyFormatter) Format(ctx context.Context, key, ip, port string) string {
	var b strings.Builder
	b.WriteString(NormalizeKey(key))
	b.WriteByte('@')
	b.WriteString(f.attributor.Attribute(ctx, ip))
	if f.withPort && port != "" {
		b.WriteByte(':')
		b.WriteString(port)
	}
	return b.String()
}
