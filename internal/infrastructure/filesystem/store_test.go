package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videosvc/internal/domain/media"
)

func TestResolveSource_NoRootUsesIDVerbatim(t *testing.T) {
	store := NewStore("")

	got, err := store.ResolveSource("/tmp/uploads/abc.mp4")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/uploads/abc.mp4", got)
}

func TestResolveSource_RejectsEmpty(t *testing.T) {
	store := NewStore("")

	_, err := store.ResolveSource("   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, media.ErrInvalidSource))
}

func TestResolveSource_StaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "relative", id: "clips/a.mp4", want: filepath.Join(root, "clips", "a.mp4")},
		{name: "absolute is rooted", id: "/clips/a.mp4", want: filepath.Join(root, "clips", "a.mp4")},
		{name: "traversal is cleaned", id: "../../etc/passwd", want: filepath.Join(root, "etc", "passwd")},
		{name: "backslashes", id: `clips\b.mov`, want: filepath.Join(root, "clips", "b.mov")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ResolveSource(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSource_RootRejectsDot(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.ResolveSource("./")
	require.Error(t, err)
	assert.ErrorIs(t, err, media.ErrInvalidSource)
}

func TestEnsureRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "media", "incoming")
	require.NoError(t, NewStore(root).EnsureRoot())

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, NewStore("").EnsureRoot())
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.mp4")
	dst := media.FlashCopyPath(src)
	require.NoError(t, os.WriteFile(src, []byte("vertical video"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("stale"), 0o644))

	require.NoError(t, NewStore("").CopyFile(context.Background(), src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "vertical video", string(data))
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.mp4")

	err := NewStore("").CopyFile(context.Background(), filepath.Join(dir, "nope.mp4"), dst)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "no partial output expected")
}
