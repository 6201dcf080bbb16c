package tasks

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	mu    sync.Mutex
	tasks []Task
}

func (r *recordingEnqueuer) Enqueue(task Task) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
	return true
}

func (r *recordingEnqueuer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

func TestSchedulerEnqueuesOnSchedule(t *testing.T) {
	enq := &recordingEnqueuer{}
	s := NewScheduler(enq, nil)
	require.NoError(t, s.Every("@every 1s", KindSetAnnouncement))

	s.Start()
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return enq.count() > 0 }, 3*time.Second, 50*time.Millisecond)
	enq.mu.Lock()
	assert.Equal(t, KindSetAnnouncement, enq.tasks[0].Kind)
	enq.mu.Unlock()
}

func TestSchedulerRejectsInvalidSpec(t *testing.T) {
	s := NewScheduler(&recordingEnqueuer{}, nil)
	assert.Error(t, s.Every("every hour", KindSetAnnouncement))
}
