package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videosvc/internal/domain/media"
)

func TestParseDimensions(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    media.Dimensions
		wantErr bool
	}{
		{name: "landscape", out: "1920x1080\n", want: media.Dimensions{Width: 1920, Height: 1080}},
		{name: "portrait", out: "1080x1920", want: media.Dimensions{Width: 1080, Height: 1920}},
		{name: "padded", out: "  640 x 360 \n", want: media.Dimensions{Width: 640, Height: 360}},
		{name: "empty", out: "", wantErr: true},
		{name: "one component", out: "1920", wantErr: true},
		{name: "three components", out: "1920x1080x", wantErr: true},
		{name: "two streams", out: "1920x1080\n1280x720", wantErr: true},
		{name: "not numeric", out: "widexhigh", wantErr: true},
		{name: "zero height", out: "1920x0", wantErr: true},
		{name: "negative width", out: "-4x100", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDimensions(tt.out)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, media.ErrParseFailure)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeArgs(t *testing.T) {
	args := EncodeArgs("/v/in.mp4", "/v/in.mp4_720p.mp4", 720)

	assert.Equal(t, "/v/in.mp4_720p.mp4", args[len(args)-1])
	assert.Contains(t, strings.Join(args, " "), "-i /v/in.mp4 -vf scale=-2:720 -vcodec libx264 -crf 28 -preset faster -y")
}

func TestSnapshotArgs(t *testing.T) {
	args := SnapshotArgs("/v/in.mp4", "/v/in.mp4.jpg")

	assert.Equal(t, "/v/in.mp4.jpg", args[len(args)-1])
	assert.Contains(t, strings.Join(args, " "), "-i /v/in.mp4 -ss 00:00:01 -vframes 1 -q:v 2 -y")
}

func TestProbeArgs(t *testing.T) {
	assert.Equal(t, []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=s=x:p=0",
		"clip.mov",
	}, ProbeArgs("clip.mov"))
}

// fakeTool writes an executable shell script standing in for ffmpeg/ffprobe.
func fakeTool(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestRunnerProbe(t *testing.T) {
	probe := fakeTool(t, "ffprobe", `echo "1280x720"`)
	r := NewRunner("ffmpeg", probe, nil)

	dims, err := r.Probe(context.Background(), "in.mp4")
	require.NoError(t, err)
	assert.Equal(t, media.Dimensions{Width: 1280, Height: 720}, dims)
}

func TestRunnerProbe_NonZeroExitCarriesStderr(t *testing.T) {
	probe := fakeTool(t, "ffprobe", `echo "in.mp4: No such file or directory" >&2; exit 1`)
	r := NewRunner("ffmpeg", probe, nil)

	_, err := r.Probe(context.Background(), "in.mp4")
	require.Error(t, err)
	assert.ErrorIs(t, err, media.ErrProbeFailure)
	assert.Equal(t, "ffprobe failed: in.mp4: No such file or directory", err.Error())
}

func TestRunnerProbe_MissingBinary(t *testing.T) {
	r := NewRunner("ffmpeg", filepath.Join(t.TempDir(), "missing-ffprobe"), nil)

	_, err := r.Probe(context.Background(), "in.mp4")
	assert.ErrorIs(t, err, media.ErrProbeFailure)
}

func TestRunnerEncode_WritesLastArgument(t *testing.T) {
	// The last argument is the output path.
	tool := fakeTool(t, "ffmpeg", `for last; do :; done; echo rendition > "$last"`)
	r := NewRunner(tool, "ffprobe", nil)
	out := filepath.Join(t.TempDir(), "in.mp4_480p.mp4")

	require.NoError(t, r.Encode(context.Background(), "in.mp4", out, 480))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "rendition\n", string(data))
}

func TestRunnerEncode_FailureNamesHeight(t *testing.T) {
	tool := fakeTool(t, "ffmpeg", `echo "Conversion failed!" >&2; exit 1`)
	r := NewRunner(tool, "ffprobe", nil)

	err := r.Encode(context.Background(), "in.mp4", "out.mp4", 1080)
	require.Error(t, err)

	var encodeErr *media.EncodeError
	require.True(t, errors.As(err, &encodeErr))
	assert.Equal(t, 1080, encodeErr.Height)
	assert.ErrorIs(t, err, media.ErrEncodeFailure)
	assert.Equal(t, "ffmpeg transcoding to 1080p failed: Conversion failed!", err.Error())
}

func TestRunnerSnapshot_Failure(t *testing.T) {
	tool := fakeTool(t, "ffmpeg", `exit 3`)
	r := NewRunner(tool, "ffprobe", nil)

	err := r.Snapshot(context.Background(), "in.mp4", "in.mp4.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, media.ErrThumbnailFailure)
	assert.Contains(t, err.Error(), "exit status 3")
}

type stubCopier struct {
	src, dst string
	err      error
}

func (s *stubCopier) CopyFile(_ context.Context, src, dst string) error {
	s.src, s.dst = src, dst
	return s.err
}

func TestRunnerCopy(t *testing.T) {
	copier := &stubCopier{}
	r := NewRunner("", "", copier)

	require.NoError(t, r.Copy(context.Background(), "in.mp4", "in.mp4_720p.mp4"))
	assert.Equal(t, "in.mp4", copier.src)
	assert.Equal(t, "in.mp4_720p.mp4", copier.dst)

	copier.err = errors.New("disk full")
	err := r.Copy(context.Background(), "in.mp4", "in.mp4_720p.mp4")
	assert.ErrorIs(t, err, media.ErrCopyFailure)
	assert.Contains(t, err.Error(), "disk full")
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner("", "", nil)
	assert.Equal(t, "ffmpeg", r.FFmpegBin)
	assert.Equal(t, "ffprobe", r.FFprobeBin)

	err := r.Copy(context.Background(), "a", "b")
	assert.ErrorIs(t, err, media.ErrCopyFailure)
}

func TestFailureDetailKeepsTail(t *testing.T) {
	long := strings.Repeat("a", maxDetailBytes) + "tail"
	got := failureDetail(errors.New("exit status 1"), long)

	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "tail"))
	assert.Len(t, got, maxDetailBytes+3)
}
