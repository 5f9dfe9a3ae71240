package operations

import (
	"sync"
	"time"
)

// RunStatus represents the overall run status
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// RunState is the state of one pipeline run
type RunState struct {
	mu sync.RWMutex

	ID        string     `json:"id"`
	Status    RunStatus  `json:"status"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// Steps in execution order
	Steps []*StepState `json:"steps"`

	Error error `json:"-"`
}

// NewRunState creates a pending run with one pending state per step
func NewRunState(id string, steps []Step) *RunState {
	states := make([]*StepState, len(steps))
	for i, s := range steps {
		states[i] = NewStepState(s.ID(), s.Name())
	}
	return &RunState{
		ID:        id,
		Status:    RunStatusPending,
		StartTime: time.Now(),
		Steps:     states,
	}
}

// Start marks the run as running
func (r *RunState) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = RunStatusRunning
	r.StartTime = time.Now()
}

// Complete marks the run as completed
func (r *RunState) Complete() {
	r.finish(RunStatusCompleted, nil)
}

// Fail marks the run as failed
func (r *RunState) Fail(err error) {
	r.finish(RunStatusFailed, err)
}

// Cancel marks the run as cancelled
func (r *RunState) Cancel(err error) {
	r.finish(RunStatusCancelled, err)
}

func (r *RunState) finish(status RunStatus, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.EndTime = &now
	r.Status = status
	r.Error = err
}

// GetStatus returns the current status
func (r *RunState) GetStatus() RunStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.Status
}

// GetStep returns the state of the step with the given ID, or nil
func (r *RunState) GetStep(id string) *StepState {
	for _, s := range r.Steps {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// skipFrom marks every step from index i on as skipped
func (r *RunState) skipFrom(i int, reason string) {
	for _, s := range r.Steps[i:] {
		s.Skip(reason)
	}
}

// Duration returns the duration of the run
func (r *RunState) Duration() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.EndTime != nil {
		return r.EndTime.Sub(r.StartTime)
	}
	return time.Since(r.StartTime)
}
