package tasks

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cronLogger adapts zap to the logger interface cron expects.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}

// Scheduler enqueues tasks on cron schedules.
type Scheduler struct {
	cron  *cron.Cron
	tasks Enqueuer
	log   *zap.Logger
}

func NewScheduler(tasks Enqueuer, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	logger := cronLogger{log: log.Sugar()}
	return &Scheduler{
		cron:  cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger))),
		tasks: tasks,
		log:   log,
	}
}

// Every enqueues a task of the given kind each time spec fires. spec accepts
// the standard five-field syntax and descriptors such as "@every 1h".
func (s *Scheduler) Every(spec string, kind Kind) error {
	_, err := s.cron.AddFunc(spec, func() {
		if !s.tasks.Enqueue(NewTask(kind, nil)) {
			s.log.Warn("scheduled task rejected", zap.String("kind", string(kind)))
			return
		}
		s.log.Info("scheduled task enqueued", zap.String("kind", string(kind)))
	})
	return err
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop prevents further runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
