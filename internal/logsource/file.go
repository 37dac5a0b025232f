package logsource

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads monitor lines from a file captured earlier.
type FileSource struct {
	*readerSource
	path string
}

// NewFileSource opens path and streams its lines. The file is closed when
// the source reaches EOF or is stopped.
func NewFileSource(ctx context.Context, path string, conf ...Config) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	var c Config
	if len(conf) > 0 {
		c = conf[0]
	}
	return &FileSource{
		readerSource: newReaderSource(ctx, "file:"+path, f, f, c),
		path:         path,
	}, nil
}

// Path returns the file being read.
func (s *FileSource) Path() string { return s.path }
