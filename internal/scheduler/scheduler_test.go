package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistryAddJob(t *testing.T) {
	t.Run("RequiresJobID", func(t *testing.T) {
		reg := NewRegistry()
		trigger, _ := NewCronTrigger(nil, 9, 0)
		err := reg.AddJob("", "nameless", trigger, func() {})
		assert.ErrorIs(t, err, ErrInvalidTrigger)
	})

	t.Run("RejectsInvalidTrigger", func(t *testing.T) {
		reg := NewRegistry()
		err := reg.AddJob("bad", "bad", Trigger{Kind: TriggerKindCron, Hour: 99}, func() {})
		assert.ErrorIs(t, err, ErrInvalidTrigger)
		assert.False(t, reg.HasJob("bad"))
	})

	t.Run("PastOneShotDroppedSilently", func(t *testing.T) {
		reg := NewRegistry()
		trigger, err := NewDateTrigger(time.Now().Add(-time.Hour))
		assert.NoError(t, err)

		err = reg.AddJob("stale", "stale reminder", trigger, func() {})
		assert.NoError(t, err)
		assert.False(t, reg.HasJob("stale"))
		assert.Empty(t, reg.ListJobs())
	})

	t.Run("SameIDReplacesExistingJob", func(t *testing.T) {
		reg := NewRegistry()
		first, _ := NewCronTrigger(nil, 9, 0)
		second, _ := NewCronTrigger(nil, 17, 30)

		assert.NoError(t, reg.AddJob("daily", "morning", first, func() {}))
		assert.NoError(t, reg.AddJob("daily", "evening", second, func() {}))

		jobs := reg.ListJobs()
		assert.Len(t, jobs, 1)
		assert.Equal(t, "evening", jobs[0].Name)
	})

	t.Run("ReplacingStaleOneShotRemovesOldEntry", func(t *testing.T) {
		reg := NewRegistry()
		live, _ := NewDateTrigger(time.Now().Add(time.Hour))
		stale, _ := NewDateTrigger(time.Now().Add(-time.Hour))

		assert.NoError(t, reg.AddJob("one-shot", "live", live, func() {}))
		assert.True(t, reg.HasJob("one-shot"))

		assert.NoError(t, reg.AddJob("one-shot", "stale", stale, func() {}))
		assert.False(t, reg.HasJob("one-shot"))
	})
}

func TestRegistryPauseResume(t *testing.T) {
	reg := NewRegistry()
	trigger, _ := NewCronTrigger(nil, 9, 0)
	assert.NoError(t, reg.AddJob("daily", "daily job", trigger, func() {}))

	t.Run("UnknownJob", func(t *testing.T) {
		assert.ErrorIs(t, reg.PauseJob("missing"), ErrJobNotFound)
		assert.ErrorIs(t, reg.ResumeJob("missing"), ErrJobNotFound)
	})

	t.Run("PausedJobHidesNextRun", func(t *testing.T) {
		assert.NoError(t, reg.PauseJob("daily"))
		jobs := reg.ListJobs()
		assert.Len(t, jobs, 1)
		assert.True(t, jobs[0].Paused)
		assert.Nil(t, jobs[0].NextRun)
	})

	t.Run("ResumeRestoresNextRun", func(t *testing.T) {
		assert.NoError(t, reg.ResumeJob("daily"))
		jobs := reg.ListJobs()
		assert.False(t, jobs[0].Paused)
		assert.NotNil(t, jobs[0].NextRun)
		assert.True(t, jobs[0].NextRun.After(time.Now()))
	})
}

func TestRegistryPauseGatesExecution(t *testing.T) {
	reg := NewRegistry()
	fired := 0
	entry := &jobEntry{id: "j", name: "j", paused: true}
	reg.jobs["j"] = entry

	reg.runJob(entry, func() { fired++ })
	assert.Equal(t, 0, fired)

	entry.paused = false
	reg.runJob(entry, func() { fired++ })
	assert.Equal(t, 1, fired)
}

func TestRegistryRunJobRecoversPanic(t *testing.T) {
	reg := NewRegistry()
	entry := &jobEntry{id: "explosive", name: "explosive"}
	reg.jobs["explosive"] = entry

	assert.NotPanics(t, func() {
		reg.runJob(entry, func() { panic("boom") })
	})
}

func TestRegistryRemoveJob(t *testing.T) {
	reg := NewRegistry()
	trigger, _ := NewCronTrigger(nil, 9, 0)
	assert.NoError(t, reg.AddJob("daily", "daily job", trigger, func() {}))

	assert.NoError(t, reg.RemoveJob("daily"))
	assert.False(t, reg.HasJob("daily"))
	assert.ErrorIs(t, reg.RemoveJob("daily"), ErrJobNotFound)
}

func TestRegistryStartStop(t *testing.T) {
	reg := NewRegistry()
	assert.False(t, reg.IsRunning())

	reg.Start()
	assert.True(t, reg.IsRunning())
	reg.Start() // idempotent
	assert.True(t, reg.IsRunning())

	reg.Shutdown()
	assert.False(t, reg.IsRunning())
	reg.Shutdown() // idempotent
	assert.False(t, reg.IsRunning())
}

func TestListJobsSortedByID(t *testing.T) {
	reg := NewRegistry()
	trigger, _ := NewCronTrigger(nil, 9, 0)
	assert.NoError(t, reg.AddJob("b-job", "b", trigger, func() {}))
	assert.NoError(t, reg.AddJob("a-job", "a", trigger, func() {}))
	assert.NoError(t, reg.AddJob("c-job", "c", trigger, func() {}))

	jobs := reg.ListJobs()
	assert.Len(t, jobs, 3)
	assert.Equal(t, "a-job", jobs[0].ID)
	assert.Equal(t, "b-job", jobs[1].ID)
	assert.Equal(t, "c-job", jobs[2].ID)
}
