package media

import (
	"context"

	mediadomain "videosvc/internal/domain/media"
)

// Runner is an application port for the external media tools.
type Runner interface {
	Probe(ctx context.Context, path string) (mediadomain.Dimensions, error)
	Encode(ctx context.Context, inputPath, outputPath string, height int) error
	Copy(ctx context.Context, inputPath, outputPath string) error
	Snapshot(ctx context.Context, inputPath, outputPath string) error
}

// StatusStore is an application port for the shared task status map.
// Implementations must be safe for concurrent use without caller locking.
type StatusStore interface {
	Create(taskID string, record mediadomain.TaskRecord) bool
	Set(taskID string, record mediadomain.TaskRecord)
	Get(taskID string) (mediadomain.TaskRecord, bool)
}

// SourceResolver maps a caller-supplied video id to a path the tools can read.
type SourceResolver interface {
	ResolveSource(videoID string) (string, error)
}
