package list

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TaskKind identifies what a deferred panel task does when it fires
type TaskKind int

const (
	TaskMount TaskKind = iota
	TaskScrollReplay
)

func (k TaskKind) String() string {
	switch k {
	case TaskMount:
		return "mount"
	case TaskScrollReplay:
		return "scroll-replay"
	default:
		return "unknown"
	}
}

// TaskFiredMsg is delivered to the program when a scheduled task's delay elapses
type TaskFiredMsg struct {
	ListID string
	TaskID uint64
	Kind   TaskKind
}

// Task is a scheduled one-shot action. Run Cmd through Bubble Tea to start its timer.
type Task struct {
	ID   uint64
	Kind TaskKind
	Cmd  tea.Cmd
}

// Scheduler hands out deferred one-shot tasks for a single panel and cancels them on teardown.
// It is only used from the Bubble Tea update loop; the task Cmds themselves only wait on
// their timer and context.
type Scheduler struct {
	owner     string
	delay     time.Duration
	nextID    uint64
	pending   map[uint64]context.CancelFunc
	destroyed bool
}

// NewScheduler creates a scheduler whose tasks report back to the given list ID
func NewScheduler(owner string, delay time.Duration) *Scheduler {
	return &Scheduler{
		owner:   owner,
		delay:   delay,
		pending: make(map[uint64]context.CancelFunc),
	}
}

// Schedule registers a task. After CancelAll it returns a task with a nil Cmd.
func (s *Scheduler) Schedule(kind TaskKind) Task {
	s.nextID++
	task := Task{ID: s.nextID, Kind: kind}
	if s.destroyed {
		return task
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.pending[task.ID] = cancel

	msg := TaskFiredMsg{ListID: s.owner, TaskID: task.ID, Kind: kind}
	delay := s.delay
	task.Cmd = func() tea.Msg {
		if ctx.Err() != nil {
			return nil
		}
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
	return task
}

// Complete consumes a fired task. It returns false for tasks that were cancelled or already completed.
func (s *Scheduler) Complete(id uint64) bool {
	cancel, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	cancel()
	return true
}

// Cancel drops a single pending task
func (s *Scheduler) Cancel(id uint64) {
	if cancel, ok := s.pending[id]; ok {
		cancel()
		delete(s.pending, id)
	}
}

// CancelAll cancels every pending task and refuses new ones
func (s *Scheduler) CancelAll() {
	s.destroyed = true
	for id := range s.pending {
		s.Cancel(id)
	}
}

// Pending returns the number of tasks that have not fired or been cancelled
func (s *Scheduler) Pending() int {
	return len(s.pending)
}
