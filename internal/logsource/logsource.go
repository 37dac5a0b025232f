package logsource

import "github.com/tinytelemetry/faina/internal/model"

// LogSource is a unified interface for monitor log inputs (stdin, files).
type LogSource interface {
	Lines() <-chan model.IngestEnvelope // read-only channel of raw lines, closed at EOF
	Stop()                              // graceful shutdown
	Name() string                       // "stdin", "file:<path>"
}
