package funcall

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CallStatus is the lifecycle state of one dispatched call.
type CallStatus string

const (
	StatusExecuting CallStatus = "executing"
	StatusSucceeded CallStatus = "succeeded"
	StatusFailed    CallStatus = "failed"
)

// CallRecord is the observable audit trail of one dispatch. It is created in
// StatusExecuting the instant a call is accepted and transitions exactly once
// to a terminal state; terminal records never change again. Persisting the
// record is the host's job.
type CallRecord struct {
	ID       uuid.UUID
	Name     string
	CalledAt time.Time

	mu     sync.Mutex
	status CallStatus
	result string
}

// NewCallRecord creates a record for a just-accepted call to the named tool.
func NewCallRecord(name string) *CallRecord {
	return &CallRecord{
		ID:       uuid.New(),
		Name:     name,
		CalledAt: time.Now(),
		status:   StatusExecuting,
	}
}

// Succeed moves the record to StatusSucceeded carrying the rendered result.
// It reports whether the transition applied; a record that is already
// terminal is left untouched.
func (r *CallRecord) Succeed(result string) bool {
	return r.settle(StatusSucceeded, result)
}

// Fail moves the record to StatusFailed carrying a short diagnostic.
// It reports whether the transition applied.
func (r *CallRecord) Fail(diagnostic string) bool {
	return r.settle(StatusFailed, diagnostic)
}

func (r *CallRecord) settle(status CallStatus, result string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != StatusExecuting {
		return false
	}
	r.status = status
	r.result = result
	return true
}

// Status returns the current lifecycle state. Safe for concurrent use.
func (r *CallRecord) Status() CallStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Result returns the rendered result (succeeded) or diagnostic (failed);
// empty while the call is still executing.
func (r *CallRecord) Result() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}
