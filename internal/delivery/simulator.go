package delivery

import (
	"time"

	"chatlite/internal/models"
)

// Options controls the simulated delivery timing. A message is marked
// delivered after DeliveredAfter and seen after SeenAfter; when a batch of
// messages is scheduled together, each subsequent message is staggered by
// Step, so later messages in a conversation flip later.
type Options struct {
	DeliveredAfter time.Duration
	SeenAfter      time.Duration
	Step           time.Duration
}

// DefaultOptions mirrors the original timing: delivered after 1s, seen after
// 3s, 200ms stagger.
func DefaultOptions() Options {
	return Options{
		DeliveredAfter: time.Second,
		SeenAfter:      3 * time.Second,
		Step:           200 * time.Millisecond,
	}
}

// Simulator translates message events into scheduler tasks. It owns no state
// beyond its options; cancellation goes straight to the scheduler.
type Simulator struct {
	sched Scheduler
	opts  Options
}

func NewSimulator(sched Scheduler, opts Options) *Simulator {
	return &Simulator{sched: sched, opts: opts}
}

// MessageSent schedules the two-step lifecycle for a single just-appended
// message.
func (s *Simulator) MessageSent(msg models.Message) {
	s.scheduleAt(msg, 0)
}

// ConversationOpened schedules the lifecycle for every one of the viewer's
// own messages still in "sent", staggered by position, the way the original
// re-arms the simulation each time a conversation view loads.
func (s *Simulator) ConversationOpened(viewerID string, msgs []models.Message) {
	for i, m := range msgs {
		if m.SenderID == viewerID && m.Status == models.MessageSent {
			s.scheduleAt(m, time.Duration(i)*s.opts.Step)
		}
	}
}

func (s *Simulator) scheduleAt(msg models.Message, offset time.Duration) {
	s.sched.Schedule(Task{
		MessageID:      msg.ID,
		ConversationID: msg.ConversationID,
		Target:         models.MessageDelivered,
		Delay:          s.opts.DeliveredAfter + offset,
	})
	s.sched.Schedule(Task{
		MessageID:      msg.ID,
		ConversationID: msg.ConversationID,
		Target:         models.MessageSeen,
		Delay:          s.opts.SeenAfter + offset,
	})
}

// ConversationClosed cancels all pending tasks for a conversation; tearing
// down the view must not mutate status on an unrendered record.
func (s *Simulator) ConversationClosed(conversationID string) {
	s.sched.CancelConversation(conversationID)
}

// Shutdown cancels everything. Called when the session is cleared; no timer
// may fire afterwards.
func (s *Simulator) Shutdown() {
	s.sched.CancelAll()
}
