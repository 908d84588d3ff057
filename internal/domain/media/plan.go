package media

import (
	"strconv"
	"strings"
)

// Ladder is the ascending list of standard rendition heights.
var Ladder = []int{480, 720, 1080, 1440, 2160}

// FlashCopyHeight labels the single output of the flash branch regardless of
// the real source height.
const FlashCopyHeight = 720

// RenditionPlan is the ordered list of output heights for one task.
type RenditionPlan []int

// String renders the plan as "480p,720p".
func (p RenditionPlan) String() string {
	parts := make([]string, 0, len(p))
	for _, h := range p {
		parts = append(parts, strconv.Itoa(h)+"p")
	}
	return strings.Join(parts, ",")
}
