package pipeline

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/optimald/webevo-report-gen/internal/report"
	"github.com/optimald/webevo-report-gen/pkg/shared/config"
	"github.com/optimald/webevo-report-gen/pkg/shared/files"
)

// Runner performs the two sequenced stages of a job. *Generator is the real
// implementation.
type Runner interface {
	Build(path string) (*report.ReportModel, error)
	Render(ctx context.Context, model *report.ReportModel) ([]string, error)
}

// Pipeline watches the input folder and runs one job per discovered scan
// record. Jobs for distinct paths run concurrently; a single path is only
// ever claimed by one job, and a path that reached done is never reprocessed
// for the lifetime of the process.
type Pipeline struct {
	cfg    *config.Config
	logger hclog.Logger
	runner Runner

	mu     sync.Mutex
	seen   map[string]struct{}
	active map[string]struct{}
	wg     sync.WaitGroup
}

func New(cfg *config.Config, runner Runner, logger hclog.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		logger: logger,
		runner: runner,
		seen:   make(map[string]struct{}),
		active: make(map[string]struct{}),
	}
}

// Watch observes the configured folder until ctx is cancelled. Cancellation
// halts dispatch of new jobs; in-flight jobs finish naturally and are drained
// before Watch returns.
func (p *Pipeline) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(p.cfg.Reports.WatchFolder); err != nil {
		return err
	}
	p.logger.Info("started watching folder", "path", p.cfg.Reports.WatchFolder)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("stopping watch loop, draining in-flight jobs")
			p.wg.Wait()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				p.wg.Wait()
				return nil
			}
			p.handleEvent(event)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				p.wg.Wait()
				return nil
			}
			p.logger.Error("watcher error", "error", watchErr)
		}
	}
}

// handleEvent filters creation/modification events down to data files and
// dispatches a job for each qualifying path.
func (p *Pipeline) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if !files.HasExtension(event.Name, ".json") {
		return
	}
	if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
		return
	}
	p.Dispatch(event.Name)
}

// Dispatch claims path and starts its job, reporting whether a job started.
// Already-done and in-flight paths are skipped.
func (p *Pipeline) Dispatch(path string) bool {
	if !p.claim(path) {
		return false
	}

	job := &Job{ID: uuid.New(), Path: path, State: JobDiscovered}
	p.logger.Info("processing new file", "path", path, "job", job.ID)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.process(job)
	}()
	return true
}

// process runs one job to done or failed. Jobs deliberately run on a
// background context: stopping the watch loop must not abort a render that
// is already in flight.
func (p *Pipeline) process(job *Job) {
	ctx := context.Background()

	// Best-effort stabilization: give the writer a moment to finish before
	// the file is read. Not a completeness guarantee.
	p.transition(job, JobDebouncing)
	time.Sleep(p.cfg.Reports.Debounce.Std())

	p.transition(job, JobBuilding)
	model, err := p.runner.Build(job.Path)
	if err != nil {
		p.fail(job, err)
		return
	}

	p.transition(job, JobRendering)
	artifacts, err := p.runner.Render(ctx, model)
	if err != nil {
		p.fail(job, err)
		return
	}
	job.Artifacts = artifacts

	p.mu.Lock()
	delete(p.active, job.Path)
	p.seen[job.Path] = struct{}{}
	p.mu.Unlock()

	p.transition(job, JobDone)
	p.logger.Info("successfully processed file", "path", job.Path, "artifacts", len(artifacts))
}

// fail logs and drops the job. The path is released, so a later modification
// event may try again; there is no automatic retry.
func (p *Pipeline) fail(job *Job, err error) {
	p.mu.Lock()
	delete(p.active, job.Path)
	p.mu.Unlock()

	p.transition(job, JobFailed)
	p.logger.Error("failed to process file", "path", job.Path, "error", err)
}

// claim marks path active unless it is already done or in flight. The
// check-then-insert runs under the mutex so concurrent events for the same
// path yield exactly one job.
func (p *Pipeline) claim(path string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, done := p.seen[path]; done {
		return false
	}
	if _, inFlight := p.active[path]; inFlight {
		return false
	}
	p.active[path] = struct{}{}
	return true
}

// Seen reports whether path has already been processed to done.
func (p *Pipeline) Seen(path string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.seen[path]
	return ok
}

// Drain waits for all in-flight jobs to finish.
func (p *Pipeline) Drain() {
	p.wg.Wait()
}

func (p *Pipeline) transition(job *Job, state JobState) {
	job.State = state
	p.logger.Debug("job state changed", "job", job.ID, "path", job.Path, "state", state)
}
