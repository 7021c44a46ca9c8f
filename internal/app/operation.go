package app

import "time"

// Operation tracks one CLI invocation. Its ID tags every log line written
// during the invocation so a session can be grepped out of nutrilog.log.
type Operation struct {
	ID      string
	Name    string
	Started time.Time
	Status  string // "success" or "error"
	Mutated bool
}

// NewOperation creates an operation that started at now.
func NewOperation(name string, now time.Time) *Operation {
	return &Operation{
		ID:      now.UTC().Format("20060102T150405Z"),
		Name:    name,
		Started: now,
		Status:  "success",
	}
}

// Record notes the outcome of a step. A failed step marks the whole
// operation as failed; a successful state change marks it as mutating.
func (op *Operation) Record(err error, mutated bool) {
	if err != nil {
		op.Status = "error"
		return
	}
	if mutated {
		op.Mutated = true
	}
}

// Elapsed returns the time since the operation started.
func (op *Operation) Elapsed(now time.Time) time.Duration {
	return now.Sub(op.Started)
}
