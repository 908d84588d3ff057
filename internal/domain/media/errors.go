package media

import (
	"errors"
	"fmt"
)

var (
	ErrProbeFailure       = errors.New("ffprobe failed")
	ErrParseFailure       = errors.New("invalid ffprobe output")
	ErrInvalidAspectRatio = errors.New("invalid aspect ratio")
	ErrUnknownFormat      = errors.New("unknown format")
	ErrEncodeFailure      = errors.New("ffmpeg transcoding failed")
	ErrThumbnailFailure   = errors.New("ffmpeg thumbnail generation failed")
	ErrCopyFailure        = errors.New("flash copy failed")

	// Submission-time rejections; no task record exists for these.
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidSource  = errors.New("invalid source path")
	ErrTaskExists     = errors.New("task already exists")
)

// EncodeError reports a failed rendition at a specific height.
type EncodeError struct {
	Height int
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("ffmpeg transcoding to %dp failed", e.Height)
	}
	return fmt.Sprintf("ffmpeg transcoding to %dp failed: %v", e.Height, e.Err)
}

func (e *EncodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrEncodeFailure}
	}
	return []error{ErrEncodeFailure, e.Err}
}
