package media

import (
	"fmt"
	"math"

	mediadomain "videosvc/internal/domain/media"
)

// ValidateFormat checks the source aspect ratio against the requested target.
// Square sources are accepted by both targets.
func ValidateFormat(ratio float64, target mediadomain.DeliveryTarget) error {
	if !target.Known() {
		return fmt.Errorf("%w: %q", mediadomain.ErrUnknownFormat, string(target))
	}
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return fmt.Errorf("%w: %v", mediadomain.ErrInvalidAspectRatio, ratio)
	}

	switch target {
	case mediadomain.TargetHome:
		if ratio < 1.0 {
			return fmt.Errorf("%w for home (%s expected)", mediadomain.ErrInvalidAspectRatio, target.Orientation())
		}
	case mediadomain.TargetFlash:
		if ratio > 1.0 {
			return fmt.Errorf("%w for flash (%s expected)", mediadomain.ErrInvalidAspectRatio, target.Orientation())
		}
	}
	return nil
}
