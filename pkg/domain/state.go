package domain

import (
	"fmt"
	"time"
)

// StateKind tags what a StateRecord describes.
type StateKind string

const (
	KindExists StateKind = "exists" // The screen is present
	KindReady  StateKind = "ready"  // The screen is present and accepts actions
)

// StateRecord is an immutable observation of a navigable's status.
// Every status query produces a new record; records are never mutated.
// It is passed by value so holders cannot alter each other's copy.
type StateRecord struct {
	// Navigable is the observed screen. It is not serialized: records read back
	// from an external store only carry NavigableID.
	Navigable Navigable `json:"-"`

	NavigableID string    `json:"navigable_id"`
	Kind        StateKind `json:"kind"`
	Value       any       `json:"value"`

	// Err holds the probe failure, if the query itself failed.
	Err string `json:"err,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// NewStateRecord creates a record for n observed at the given time.
func NewStateRecord(n Navigable, kind StateKind, value any, at time.Time) StateRecord {
	return StateRecord{
		Navigable:   n,
		NavigableID: IDOf(n),
		Kind:        kind,
		Value:       value,
		Timestamp:   at,
	}
}

// WithError returns a copy of the record annotated with a probe failure.
func (r StateRecord) WithError(err error) StateRecord {
	if err != nil {
		r.Err = err.Error()
	}
	return r
}

// Bool interprets the value as a boolean. Non-boolean values are false.
func (r StateRecord) Bool() bool {
	b, ok := r.Value.(bool)
	return ok && b
}

// Failed reports whether the probe that produced the record failed.
func (r StateRecord) Failed() bool {
	return r.Err != ""
}

func (r StateRecord) String() string {
	s := fmt.Sprintf("%s[%s]=%v @ %s", r.NavigableID, r.Kind, r.Value, r.Timestamp.Format(time.RFC3339Nano))
	if r.Err != "" {
		s += " (err: " + r.Err + ")"
	}
	return s
}
