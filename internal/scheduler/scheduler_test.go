package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradescout/tradescout/pkg/logger"
)

type countingJob struct {
	name     string
	schedule string
	runs     atomic.Int32
	failFor  int32 // first N runs fail
}

func (j *countingJob) Name() string     { return j.name }
func (j *countingJob) Schedule() string { return j.schedule }

func (j *countingJob) Run(ctx context.Context) error {
	n := j.runs.Add(1)
	if n <= j.failFor {
		return errors.New("transient failure")
	}
	return nil
}

func TestScheduler_AddJobRejectsDuplicates(t *testing.T) {
	s := New(logger.NewNop())
	job := &countingJob{name: "scan", schedule: "@daily"}

	require.NoError(t, s.AddJob(job))
	err := s.AddJob(&countingJob{name: "scan", schedule: "@hourly"})
	assert.Error(t, err)
}

func TestScheduler_AddJobRejectsBadSchedule(t *testing.T) {
	s := New(logger.NewNop())
	err := s.AddJob(&countingJob{name: "scan", schedule: "not a schedule"})
	assert.Error(t, err)
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(logger.NewNop()).WithRetry(0, 0)
	job := &countingJob{name: "scan", schedule: "@daily"}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunNow("scan"))

	waitFor(t, func() bool {
		h, _ := s.History("scan")
		return len(h.Results) == 1
	})

	assert.Equal(t, int32(1), job.runs.Load())
	history, err := s.History("scan")
	require.NoError(t, err)
	assert.True(t, history.Results[0].Success)
}

func TestScheduler_RunNowUnknownJob(t *testing.T) {
	s := New(logger.NewNop())
	assert.Error(t, s.RunNow("nope"))
}

func TestScheduler_RetriesTransientFailure(t *testing.T) {
	s := New(logger.NewNop()).WithRetry(2, time.Millisecond)
	job := &countingJob{name: "flaky", schedule: "@daily", failFor: 2}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunNow("flaky"))

	waitFor(t, func() bool {
		h, _ := s.History("flaky")
		return len(h.Results) == 1
	})

	history, err := s.History("flaky")
	require.NoError(t, err)
	assert.True(t, history.Results[0].Success)
	assert.Equal(t, int32(3), job.runs.Load())
}

func TestScheduler_RecordsFailureAfterRetries(t *testing.T) {
	s := New(logger.NewNop()).WithRetry(1, time.Millisecond)
	job := &countingJob{name: "broken", schedule: "@daily", failFor: 10}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunNow("broken"))

	waitFor(t, func() bool {
		h, _ := s.History("broken")
		return len(h.Results) == 1
	})

	history, _ := s.History("broken")
	assert.False(t, history.Results[0].Success)
	assert.Equal(t, "transient failure", history.Results[0].Error)
	assert.Zero(t, history.SuccessRate())
}

func TestJobHistory_Latest(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 5; i++ {
		h.AddResult(JobResult{JobName: "j", Success: i%2 == 0})
	}

	latest := h.Latest(2)
	assert.Len(t, latest, 2)
	assert.Len(t, h.Latest(100), 5)
	assert.Empty(t, h.Latest(0))
}

func TestJobHistory_CapsLength(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < historyLimit+20; i++ {
		h.AddResult(JobResult{JobName: "j", Success: true})
	}
	assert.Len(t, h.Results, historyLimit)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
