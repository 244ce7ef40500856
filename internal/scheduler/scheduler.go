// Package scheduler holds the named-job registry and its background
// execution runtime. Jobs are in-memory only: nothing is persisted across
// restarts and the default reminder set is re-registered at every startup.
package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"dues-tracker-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// ErrJobNotFound is returned by pause/resume/remove for an unknown job id.
var ErrJobNotFound = errors.New("job not found")

// JobInfo is a read-only snapshot of one registered job.
type JobInfo struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Paused  bool       `json:"paused"`
	NextRun *time.Time `json:"next_run,omitempty"`
}

type jobEntry struct {
	id      string
	name    string
	trigger Trigger
	sched   cron.Schedule
	entryID cron.EntryID
	paused  bool
}

// Registry schedules named jobs on a single background cron runtime.
// Work units run in their own goroutines, so a slow reminder never blocks
// trigger evaluation or other jobs.
type Registry struct {
	cron    *cron.Cron
	mu      sync.Mutex
	jobs    map[string]*jobEntry
	started bool
}

// NewRegistry creates an empty registry. Triggers evaluate in server-local
// time, matching how reminder times are configured.
func NewRegistry() *Registry {
	return &Registry{
		cron: cron.New(cron.WithLocation(time.Local)),
		jobs: make(map[string]*jobEntry),
	}
}

// Start begins firing triggers. Calling it on an already running registry
// is a no-op.
func (r *Registry) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.cron.Start()
	r.started = true
	logger.Info("Job scheduler started", "jobs", len(r.jobs))
}

// Shutdown stops future firings. It does not wait for in-flight job bodies;
// reminders are best-effort, so nothing needs a completion guarantee.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return
	}
	r.cron.Stop()
	r.started = false
	logger.Info("Job scheduler stopped")
}

// AddJob registers fn under id, replacing any existing job with the same id.
// The replacement is atomic with respect to firing: the old trigger is gone
// before the new one is installed, so a replace can never double-fire.
//
// A one-shot trigger whose fire time has already passed is dropped silently:
// no entry is created and no error is returned. Stale reminders are policy,
// not failures.
func (r *Registry) AddJob(id, name string, trigger Trigger, fn func()) error {
	if id == "" {
		return fmt.Errorf("%w: job id is required", ErrInvalidTrigger)
	}
	if err := trigger.Validate(); err != nil {
		return err
	}
	sched, err := trigger.schedule()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.jobs[id]; ok {
		r.cron.Remove(old.entryID)
		delete(r.jobs, id)
	}

	if trigger.Kind == TriggerKindDate && !trigger.At.After(time.Now()) {
		logger.Info("Dropping one-shot job with fire time in the past", "job", id, "at", trigger.At)
		return nil
	}

	entry := &jobEntry{id: id, name: name, trigger: trigger, sched: sched}
	entry.entryID = r.cron.Schedule(sched, cron.FuncJob(func() {
		r.runJob(entry, fn)
	}))
	r.jobs[id] = entry

	logger.Info("Job registered", "job", id, "name", name, "kind", string(trigger.Kind))
	return nil
}

// runJob executes one firing of a job, honoring pause and containing panics
// so one bad body cannot take down the runtime or other jobs.
func (r *Registry) runJob(entry *jobEntry, fn func()) {
	r.mu.Lock()
	paused := entry.paused
	r.mu.Unlock()
	if paused {
		logger.Debug("Skipping paused job", "job", entry.id)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Job panicked", "job", entry.id, "panic", rec)
		}
	}()

	log := logger.WithJob(entry.id)
	log.Info("Job firing")
	fn()
	log.Info("Job completed")
}

// PauseJob keeps the job registered but suppresses its firings.
func (r *Registry) PauseJob(id string) error {
	return r.setPaused(id, true)
}

// ResumeJob re-enables a paused job from its next trigger occurrence.
func (r *Registry) ResumeJob(id string) error {
	return r.setPaused(id, false)
}

func (r *Registry) setPaused(id string, paused bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	entry.paused = paused
	logger.Info("Job pause state changed", "job", id, "paused", paused)
	return nil
}

// RemoveJob deletes the job entirely.
func (r *Registry) RemoveJob(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	r.cron.Remove(entry.entryID)
	delete(r.jobs, id)
	logger.Info("Job removed", "job", id)
	return nil
}

// ListJobs returns a snapshot of all registered jobs sorted by id. NextRun
// is nil for paused jobs and for one-shot jobs that have already fired.
func (r *Registry) ListJobs() []JobInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	infos := make([]JobInfo, 0, len(r.jobs))
	for _, entry := range r.jobs {
		info := JobInfo{ID: entry.id, Name: entry.name, Paused: entry.paused}
		if !entry.paused {
			if next := entry.sched.Next(now); !next.IsZero() {
				info.NextRun = &next
			}
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// HasJob reports whether a job id is currently registered.
func (r *Registry) HasJob(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.jobs[id]
	return ok
}

// IsRunning reports whether the background runtime is firing triggers.
func (r *Registry) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}
