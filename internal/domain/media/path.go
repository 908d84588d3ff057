package media

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// NormalizeSourcePath validates and normalizes a media-root relative path.
func NormalizeSourcePath(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", errors.New("invalid file name")
	}

	value = strings.ReplaceAll(value, "\\", "/")
	cleaned := path.Clean("/" + value)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", errors.New("invalid file name")
	}
	return cleaned, nil
}

// RenditionPath is where the rendition of videoPath at height is written.
func RenditionPath(videoPath string, height int) string {
	return fmt.Sprintf("%s_%dp.mp4", videoPath, height)
}

// FlashCopyPath is the single output of the flash branch.
func FlashCopyPath(videoPath string) string {
	return RenditionPath(videoPath, FlashCopyHeight)
}

// ThumbnailPath is where the thumbnail of videoPath is written.
func ThumbnailPath(videoPath string) string {
	return videoPath + ".jpg"
}
