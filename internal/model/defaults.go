package model

// Shared defaults used by the CLI and the processing packages.
const (
	DefaultRedisVersion     = "2.6"
	DefaultResolveCacheSize = 4096
	DefaultWorkers          = 1
	DefaultFormat           = "text"
	IdleMarker              = "OK"
	KeyPlaceholder          = "#"
)
