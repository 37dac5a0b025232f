package model

// IngestEnvelope carries one raw monitor line with source metadata.
// It is the transport contract between input sources and processing.
type IngestEnvelope struct {
	Source string
	Line   string
}
