package media

import (
	"fmt"
	"math"

	mediadomain "videosvc/internal/domain/media"
)

// StepKind identifies the tool invocation behind a pipeline step.
type StepKind string

const (
	StepEncode    StepKind = "encode"
	StepCopy      StepKind = "copy"
	StepThumbnail StepKind = "thumbnail"
)

// Step is one unit of rendition work in a task pipeline.
type Step struct {
	Kind   StepKind
	Height int
	Output string
}

// Message is the status text published while the step runs.
func (s Step) Message() string {
	switch s.Kind {
	case StepEncode:
		return fmt.Sprintf("Transcoding to %dp...", s.Height)
	case StepCopy:
		return "Optimizing flash video (copy)..."
	case StepThumbnail:
		return "Generating thumbnail..."
	default:
		return string(s.Kind)
	}
}

// PlanRenditions returns the ladder heights that do not exceed the source
// height. A source shorter than the lowest rung gets a single rendition at
// its own height.
func PlanRenditions(height float64) mediadomain.RenditionPlan {
	plan := make(mediadomain.RenditionPlan, 0, len(mediadomain.Ladder))
	for _, rung := range mediadomain.Ladder {
		if float64(rung) <= height {
			plan = append(plan, rung)
		}
	}
	if len(plan) == 0 {
		plan = append(plan, fallbackHeight(height))
	}
	return plan
}

func fallbackHeight(height float64) int {
	h := int(math.Round(height))
	if float64(h) > height {
		h = int(math.Floor(height))
	}
	return h
}

// PlanSteps lays out every step a task runs, in execution order. Flash
// targets bypass the ladder and produce a single copy.
func PlanSteps(source string, dims mediadomain.Dimensions, target mediadomain.DeliveryTarget, skipThumbnail bool) []Step {
	var steps []Step
	if target == mediadomain.TargetFlash {
		steps = append(steps, Step{
			Kind:   StepCopy,
			Height: mediadomain.FlashCopyHeight,
			Output: mediadomain.FlashCopyPath(source),
		})
	} else {
		for _, h := range PlanRenditions(dims.Height) {
			steps = append(steps, Step{
				Kind:   StepEncode,
				Height: h,
				Output: mediadomain.RenditionPath(source, h),
			})
		}
	}

	if !skipThumbnail {
		steps = append(steps, Step{Kind: StepThumbnail, Output: mediadomain.ThumbnailPath(source)})
	}
	return steps
}

// stepProgress is floor(index / total * 100).
func stepProgress(index, total int) int {
	if total <= 0 {
		return 0
	}
	return index * 100 / total
}
