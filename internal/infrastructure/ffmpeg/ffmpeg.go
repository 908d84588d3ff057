package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"videosvc/internal/domain/media"
)

const (
	videoCodec      = "libx264"
	videoCRF        = "28"
	videoPreset     = "faster"
	thumbnailOffset = "00:00:01"
	thumbnailQScale = "2"

	maxDetailBytes = 2048
)

// FileCopier writes a byte-for-byte copy of a file.
type FileCopier interface {
	CopyFile(ctx context.Context, src, dst string) error
}

// Runner wraps ffprobe/ffmpeg calls behind the media Runner port.
type Runner struct {
	FFmpegBin  string
	FFprobeBin string
	files      FileCopier
}

// NewRunner creates the ffmpeg adapter. files performs the flash copy.
func NewRunner(ffmpegBin, ffprobeBin string, files FileCopier) *Runner {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}
	return &Runner{FFmpegBin: ffmpegBin, FFprobeBin: ffprobeBin, files: files}
}

// Probe reads the width and height of the first video stream.
func (r *Runner) Probe(ctx context.Context, path string) (media.Dimensions, error) {
	out, stderr, err := run(ctx, r.FFprobeBin, ProbeArgs(path)...)
	if err != nil {
		return media.Dimensions{}, fmt.Errorf("%w: %s", media.ErrProbeFailure, failureDetail(err, stderr))
	}
	return ParseDimensions(string(out))
}

// Encode writes a rendition of inputPath scaled to height.
func (r *Runner) Encode(ctx context.Context, inputPath, outputPath string, height int) error {
	_, stderr, err := run(ctx, r.FFmpegBin, EncodeArgs(inputPath, outputPath, height)...)
	if err != nil {
		return &media.EncodeError{Height: height, Err: errors.New(failureDetail(err, stderr))}
	}
	return nil
}

// Snapshot writes a single frame taken one second into inputPath.
func (r *Runner) Snapshot(ctx context.Context, inputPath, outputPath string) error {
	_, stderr, err := run(ctx, r.FFmpegBin, SnapshotArgs(inputPath, outputPath)...)
	if err != nil {
		return fmt.Errorf("%w: %s", media.ErrThumbnailFailure, failureDetail(err, stderr))
	}
	return nil
}

// Copy duplicates inputPath without re-encoding.
func (r *Runner) Copy(ctx context.Context, inputPath, outputPath string) error {
	if r.files == nil {
		return fmt.Errorf("%w: no file copier configured", media.ErrCopyFailure)
	}
	if err := r.files.CopyFile(ctx, inputPath, outputPath); err != nil {
		return fmt.Errorf("%w: %v", media.ErrCopyFailure, err)
	}
	return nil
}

// ProbeArgs emits "WIDTHxHEIGHT" for the first video stream.
func ProbeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=s=x:p=0",
		path,
	}
}

// ScaleFilter fixes the output height; -2 keeps the aspect ratio with an
// even width.
func ScaleFilter(height int) string {
	return fmt.Sprintf("scale=-2:%d", height)
}

// EncodeArgs builds the rendition command line.
func EncodeArgs(inputPath, outputPath string, height int) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-vf", ScaleFilter(height),
		"-vcodec", videoCodec,
		"-crf", videoCRF,
		"-preset", videoPreset,
		"-y",
		outputPath,
	}
}

// SnapshotArgs builds the thumbnail command line.
func SnapshotArgs(inputPath, outputPath string) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-ss", thumbnailOffset,
		"-vframes", "1",
		"-q:v", thumbnailQScale,
		"-y",
		outputPath,
	}
}

// ParseDimensions parses ffprobe's "WIDTHxHEIGHT" output.
func ParseDimensions(out string) (media.Dimensions, error) {
	value := strings.TrimSpace(out)
	parts := strings.Split(value, "x")
	if len(parts) != 2 {
		return media.Dimensions{}, fmt.Errorf("%w: %q", media.ErrParseFailure, value)
	}

	width, err := parseSide(parts[0])
	if err != nil {
		return media.Dimensions{}, fmt.Errorf("%w: %q: %v", media.ErrParseFailure, value, err)
	}
	height, err := parseSide(parts[1])
	if err != nil {
		return media.Dimensions{}, fmt.Errorf("%w: %q: %v", media.ErrParseFailure, value, err)
	}
	return media.Dimensions{Width: width, Height: height}, nil
}

func parseSide(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("dimension %v out of range", v)
	}
	return v, nil
}

func run(ctx context.Context, name string, args ...string) ([]byte, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), strings.TrimSpace(stderr.String()), err
}

// failureDetail prefers the tool's own stderr; ffmpeg puts the useful part
// at the end.
func failureDetail(err error, stderr string) string {
	if stderr == "" {
		return err.Error()
	}
	if len(stderr) > maxDetailBytes {
		return "..." + stderr[len(stderr)-maxDetailBytes:]
	}
	return stderr
}
