package tasks

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startManager(t *testing.T, handler Handler, workers, maxAttempts int) *Manager {
	t.Helper()
	m := NewManager(NewQueue(4), handler, nil, workers, maxAttempts)
	m.Start(context.Background())
	t.Cleanup(m.Stop)
	return m
}

func drain(t *testing.T, m *Manager) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.True(t, m.DrainUntil(ctx), "queue did not drain")
}

func TestManagerProcessesEveryTask(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]bool{}
	m := startManager(t, HandlerFunc(func(_ context.Context, task Task) error {
		mu.Lock()
		defer mu.Unlock()
		seen[task.Id] = true
		return nil
	}), 3, 1)

	ids := []string{}
	for i := 0; i < 50; i++ {
		task := NewTask(KindSetAnnouncement, nil)
		ids = append(ids, task.Id)
		require.True(t, m.Enqueue(task))
	}
	drain(t, m)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, 50)
	for _, id := range ids {
		assert.True(t, seen[id])
	}
}

func TestManagerRetriesFailedTask(t *testing.T) {
	var attempts atomic.Int32
	m := startManager(t, HandlerFunc(func(_ context.Context, task Task) error {
		attempts.Add(1)
		if task.Attempts < 2 {
			return errors.New("temporary")
		}
		return nil
	}), 1, 3)

	require.True(t, m.Enqueue(NewTask(KindSetAnnouncement, nil)))
	drain(t, m)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestManagerGivesUpAfterMaxAttempts(t *testing.T) {
	var attempts atomic.Int32
	m := startManager(t, HandlerFunc(func(context.Context, Task) error {
		attempts.Add(1)
		return errors.New("permanent")
	}), 2, 3)

	require.True(t, m.Enqueue(NewTask(KindSetAnnouncement, nil)))
	drain(t, m)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestManagerRejectsAfterCloseIntake(t *testing.T) {
	m := startManager(t, HandlerFunc(func(context.Context, Task) error { return nil }), 1, 1)
	m.CloseIntake()
	assert.False(t, m.Enqueue(NewTask(KindSetAnnouncement, nil)))
	drain(t, m)
}

func TestQueueBacklogBeyondBuffer(t *testing.T) {
	q := NewQueue(2)
	for i := 0; i < 5; i++ {
		require.True(t, q.Enqueue(NewTask(KindSetAnnouncement, nil)))
	}
	q.flushOnce()

	enq, proc, backlog, depth := q.Metrics()
	assert.Equal(t, uint64(5), enq)
	assert.Equal(t, uint64(0), proc)
	assert.Equal(t, 3, backlog)
	assert.Equal(t, 5, depth)
}
