// Package tasks runs work that is decoupled from the request that caused it:
// confirmation emails and the aggregate cache refreshes.
package tasks

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSendConfirmationEmail Kind = "send_confirmation_email"
	KindSetFeaturedSpeaker    Kind = "set_featured_speaker"
	KindSetAnnouncement       Kind = "set_announcement"
)

// Task parameter names.
const (
	ParamEmail          = "email"
	ParamConferenceInfo = "conferenceInfo"
	ParamSpeaker        = "speaker"
	ParamConferenceKey  = "websafeConferenceKey"
)

type Task struct {
	Id         string
	Kind       Kind
	Params     map[string]string
	Attempts   int
	EnqueuedAt time.Time
}

func NewTask(kind Kind, params map[string]string) Task {
	if params == nil {
		params = map[string]string{}
	}
	return Task{
		Id:         uuid.NewString(),
		Kind:       kind,
		Params:     params,
		EnqueuedAt: time.Now(),
	}
}

// Enqueuer accepts tasks for asynchronous processing. It reports false when
// the task was rejected, e.g. during shutdown.
type Enqueuer interface {
	Enqueue(task Task) bool
}
