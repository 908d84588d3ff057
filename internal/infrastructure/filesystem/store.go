package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"videosvc/internal/domain/media"
)

// Store resolves source media paths and writes derived files.
type Store struct {
	Root string
}

// NewStore creates a filesystem adapter. An empty root means video ids are
// used as paths verbatim.
func NewStore(root string) *Store {
	return &Store{Root: strings.TrimSpace(root)}
}

// EnsureRoot creates the media root when one is configured.
func (s *Store) EnsureRoot() error {
	if s.Root == "" {
		return nil
	}
	return os.MkdirAll(s.Root, 0o755)
}

// ResolveSource returns the path the media tools should read for videoID.
func (s *Store) ResolveSource(videoID string) (string, error) {
	if strings.TrimSpace(videoID) == "" {
		return "", fmt.Errorf("%w: empty video id", media.ErrInvalidSource)
	}
	if s.Root == "" {
		return videoID, nil
	}

	rel, err := media.NormalizeSourcePath(videoID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", media.ErrInvalidSource, err)
	}
	full := filepath.Join(s.Root, filepath.FromSlash(rel))
	if !isWithinDir(s.Root, full) {
		return "", fmt.Errorf("%w: %s", media.ErrInvalidSource, videoID)
	}
	return full, nil
}

// CopyFile copies src to dst. dst is replaced atomically, so readers see
// either the old file or the complete copy.
func (s *Store) CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	pending, err := renameio.NewPendingFile(dst, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending copy: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := io.Copy(pending, in); err != nil {
		return fmt.Errorf("copy data: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(dst), err)
	}
	return nil
}

func isWithinDir(basePath, targetPath string) bool {
	baseAbs, err := filepath.Abs(basePath)
	if err != nil {
		return false
	}
	targetAbs, err := filepath.Abs(targetPath)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(baseAbs, targetAbs)
	if err != nil {
		return false
	}
	sep := string(os.PathSeparator)
	if rel == ".." || strings.HasPrefix(rel, ".."+sep) {
		return false
	}
	return true
}
