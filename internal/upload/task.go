package upload

import "fmt"

// State is the lifecycle of one file transfer.
type State int

const (
	StateIdle State = iota
	StateInProgress
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInProgress:
		return "in-progress"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Task tracks one transfer. It is transient: never persisted, alive only for
// the duration of the upload.
type Task struct {
	SessionID int64
	FileName  string
	Percent   int
	State     State
}

func (t *Task) start() {
	t.State = StateInProgress
	t.Percent = 0
}

// advance applies a progress event. Percent is monotonically non-decreasing:
// a regressing event from the transfer collaborator is clamped to the current
// value. Terminal states ignore further events.
func (t *Task) advance(p int) {
	if t.State != StateInProgress {
		return
	}
	if p > 100 {
		p = 100
	}
	if p > t.Percent {
		t.Percent = p
	}
}

// complete transitions to Complete. Only reachable after a 100% progress
// event.
func (t *Task) complete() error {
	if t.State != StateInProgress || t.Percent != 100 {
		return fmt.Errorf("cannot complete upload at %d%% in state %s", t.Percent, t.State)
	}
	t.State = StateComplete
	return nil
}

func (t *Task) fail() {
	if t.State == StateComplete {
		return
	}
	t.State = StateFailed
}
