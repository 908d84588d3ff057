package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	mediadomain "videosvc/internal/domain/media"
	vlog "videosvc/internal/log"
	"videosvc/internal/metrics"
)

// Request is one processing submission.
type Request struct {
	VideoID       string
	TaskID        string
	Target        mediadomain.DeliveryTarget
	SkipThumbnail bool
}

// Service coordinates task processing and exposes task status.
type Service struct {
	runner   Runner
	store    StatusStore
	sources  SourceResolver
	logger   zerolog.Logger
	launcher Launcher
}

// NewService creates the processing coordinator with injected ports.
func NewService(runner Runner, store StatusStore, sources SourceResolver, logger zerolog.Logger) *Service {
	return &Service{
		runner:  runner,
		store:   store,
		sources: sources,
		logger:  logger,
	}
}

// Submit records the task as starting and detaches its processing. The
// returned handle is for bookkeeping only.
func (s *Service) Submit(ctx context.Context, req Request) (Handle, error) {
	if strings.TrimSpace(req.TaskID) == "" {
		return Handle{}, fmt.Errorf("%w: task_id is required", mediadomain.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.VideoID) == "" {
		return Handle{}, fmt.Errorf("%w: video_id is required", mediadomain.ErrInvalidRequest)
	}

	source, err := s.sources.ResolveSource(req.VideoID)
	if err != nil {
		return Handle{}, err
	}

	if !s.store.Create(req.TaskID, mediadomain.StartingRecord()) {
		return Handle{}, fmt.Errorf("%w: %s", mediadomain.ErrTaskExists, req.TaskID)
	}
	metrics.RecordSubmitted()

	logger := vlog.WithContext(ctx, s.logger).With().Str("task_id", req.TaskID).Logger()
	logger.Info().
		Str("video", source).
		Str("target", string(req.Target)).
		Bool("skip_thumbnail", req.SkipThumbnail).
		Msg("processing accepted")

	run := &taskRun{
		id:            req.TaskID,
		source:        source,
		target:        req.Target,
		skipThumbnail: req.SkipThumbnail,
		store:         s.store,
		logger:        logger,
		last:          mediadomain.StartingRecord(),
	}

	// Work must outlive the submitting request.
	workCtx := vlog.ContextWithTaskID(context.WithoutCancel(ctx), req.TaskID)
	return s.launcher.Go(req.TaskID, func() { s.execute(workCtx, run) }), nil
}

// Status returns the latest record for taskID.
func (s *Service) Status(taskID string) (mediadomain.TaskRecord, bool) {
	return s.store.Get(taskID)
}

// Wait blocks until every submitted task finished or ctx is done.
func (s *Service) Wait(ctx context.Context) error {
	return s.launcher.Wait(ctx)
}

func (s *Service) execute(ctx context.Context, run *taskRun) {
	defer func() {
		if r := recover(); r != nil {
			run.fail(fmt.Errorf("internal error: %v", r))
		}
	}()

	if err := s.process(ctx, run); err != nil {
		run.fail(err)
		return
	}
	run.complete()
}

func (s *Service) process(ctx context.Context, run *taskRun) error {
	start := time.Now()
	dims, err := s.runner.Probe(ctx, run.source)
	metrics.ObserveStep("probe", time.Since(start), err)
	if err != nil {
		return err
	}
	run.logger.Debug().Float64("width", dims.Width).Float64("height", dims.Height).Msg("source probed")

	if err := ValidateFormat(dims.AspectRatio(), run.target); err != nil {
		return err
	}

	steps := PlanSteps(run.source, dims, run.target, run.skipThumbnail)
	for i, step := range steps {
		run.publish(mediadomain.TaskRecord{
			Progress: stepProgress(i, len(steps)),
			Status:   mediadomain.StatusProcessing,
			Message:  step.Message(),
		})

		start := time.Now()
		err := s.runStep(ctx, run.source, step)
		metrics.ObserveStep(string(step.Kind), time.Since(start), err)
		if err != nil {
			return err
		}
		run.logger.Debug().Str("step", string(step.Kind)).Str("output", step.Output).Dur("elapsed", time.Since(start)).Msg("step finished")
	}
	return nil
}

func (s *Service) runStep(ctx context.Context, source string, step Step) error {
	switch step.Kind {
	case StepEncode:
		return s.runner.Encode(ctx, source, step.Output, step.Height)
	case StepCopy:
		return s.runner.Copy(ctx, source, step.Output)
	case StepThumbnail:
		return s.runner.Snapshot(ctx, source, step.Output)
	default:
		return fmt.Errorf("unknown step kind %q", step.Kind)
	}
}

// taskRun is the single writer of one task's record.
type taskRun struct {
	id            string
	source        string
	target        mediadomain.DeliveryTarget
	skipThumbnail bool

	store  StatusStore
	logger zerolog.Logger
	last   mediadomain.TaskRecord
}

func (r *taskRun) publish(next mediadomain.TaskRecord) bool {
	if !r.last.Status.CanTransition(next.Status) || next.Progress < r.last.Progress {
		r.logger.Error().
			Str("from", string(r.last.Status)).
			Str("to", string(next.Status)).
			Int("progress", next.Progress).
			Msg("rejected backwards status transition")
		return false
	}
	r.store.Set(r.id, next)
	r.last = next

	event := r.logger.Info()
	if next.Status == mediadomain.StatusError {
		event = r.logger.Warn()
	}
	event.Str("status", string(next.Status)).Int("progress", next.Progress).Msg(next.Message)
	return true
}

// fail keeps the last published progress.
func (r *taskRun) fail(err error) {
	ok := r.publish(mediadomain.TaskRecord{
		Progress: r.last.Progress,
		Status:   mediadomain.StatusError,
		Message:  err.Error(),
	})
	if ok {
		metrics.RecordFinished(string(mediadomain.StatusError))
	}
}

func (r *taskRun) complete() {
	if r.publish(mediadomain.CompletedRecord()) {
		metrics.RecordFinished(string(mediadomain.StatusCompleted))
	}
}
