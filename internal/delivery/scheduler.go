// Package delivery simulates the asynchronous message-delivery pipeline:
// deferred, cancelable status transitions driven by timers. The message log's
// AdvanceStatus is the only mutation primitive it uses; its state machine
// guard makes a stale timer harmless.
package delivery

import (
	"context"
	"sync"
	"time"

	"chatlite/internal/logging"
	"chatlite/internal/messages"
	"chatlite/internal/models"
)

// Task is one deferred status transition for one message.
type Task struct {
	MessageID      string
	ConversationID string
	Target         models.MessageStatus
	Delay          time.Duration
}

// Scheduler runs tasks after their delay. Implementations must support
// cancellation per conversation (tearing down a conversation view) and
// wholesale (clearing the session); after either, no affected task may run.
type Scheduler interface {
	Schedule(task Task)
	CancelConversation(conversationID string)
	CancelAll()
}

// ApplyTo turns a message log into a task-apply function. Transition errors
// are expected here: a task scheduled before a conversation was re-opened can
// arrive after its transition already happened, and the log's guard rejects
// it. Those are logged at debug and dropped.
func ApplyTo(ml messages.Log, log logging.Logger) func(context.Context, Task) {
	if log == nil {
		log = logging.NopLogger{}
	}
	return func(ctx context.Context, t Task) {
		if err := ml.AdvanceStatus(ctx, t.MessageID, t.Target); err != nil {
			log.Debug(ctx, "delivery task discarded", "message_id", t.MessageID, "target", string(t.Target), "reason", err)
		}
	}
}

// TimerScheduler runs each task on its own time.AfterFunc timer. A fired
// timer re-checks the registry before applying, so a cancellation that raced
// the firing still wins.
type TimerScheduler struct {
	mu      sync.Mutex
	seq     uint64
	pending map[uint64]*pendingTask
	apply   func(context.Context, Task)
	log     logging.Logger
}

type pendingTask struct {
	task  Task
	timer *time.Timer
}

func NewTimerScheduler(apply func(context.Context, Task), log logging.Logger) *TimerScheduler {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &TimerScheduler{
		pending: make(map[uint64]*pendingTask),
		apply:   apply,
		log:     log,
	}
}

func (s *TimerScheduler) Schedule(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := s.seq
	p := &pendingTask{task: task}
	p.timer = time.AfterFunc(task.Delay, func() { s.fire(id) })
	s.pending[id] = p
}

func (s *TimerScheduler) fire(id uint64) {
	s.mu.Lock()
	p, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	s.mu.Unlock()

	if !ok {
		// Canceled while the timer was firing.
		return
	}
	s.apply(context.Background(), p.task)
}

func (s *TimerScheduler) CancelConversation(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.pending {
		if p.task.ConversationID == conversationID {
			p.timer.Stop()
			delete(s.pending, id)
		}
	}
}

func (s *TimerScheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, id)
	}
}

// PendingCount reports how many tasks are waiting. Used by tests and the
// CLI's shutdown logging.
func (s *TimerScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
