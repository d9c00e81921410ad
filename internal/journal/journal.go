package journal

import (
	"encoding/json"
	"math"
	"time"
)

// OpType identifies the kind of filesystem change an operation recorded.
type OpType string

const (
	OpMove      OpType = "move"
	OpCreateDir OpType = "create_dir"
	OpDelete    OpType = "delete"
)

// UnixTime serializes as fractional epoch seconds, the journal's on-disk
// timestamp representation.
type UnixTime struct {
	time.Time
}

// Now returns the current instant as a journal timestamp.
func Now() UnixTime {
	return UnixTime{Time: time.Now()}
}

func (t UnixTime) MarshalJSON() ([]byte, error) {
	seconds := float64(t.UnixNano()) / float64(time.Second)
	return json.Marshal(seconds)
}

func (t *UnixTime) UnmarshalJSON(data []byte) error {
	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return err
	}
	sec, frac := math.Modf(seconds)
	t.Time = time.Unix(int64(sec), int64(frac*float64(time.Second)))
	return nil
}

// Operation records one applied filesystem change.
type Operation struct {
	Type        OpType   `json:"type"`
	Source      string   `json:"source"`
	Destination string   `json:"destination,omitempty"`
	Timestamp   UnixTime `json:"timestamp"`
}

// NewMove records a completed move from source to destination.
func NewMove(source, destination string) Operation {
	return Operation{Type: OpMove, Source: source, Destination: destination, Timestamp: Now()}
}

// NewCreateDir records a directory created during a run.
func NewCreateDir(path string) Operation {
	return Operation{Type: OpCreateDir, Source: path, Timestamp: Now()}
}

// NewDelete records a removal. Deletions keep no backup and can never be
// undone; the record exists for history only.
func NewDelete(path string) Operation {
	return Operation{Type: OpDelete, Source: path, Timestamp: Now()}
}

// Transaction groups the operations applied by a single organize run.
// Completed transactions are eligible for undo; open ones are still
// accumulating operations and have not been persisted.
type Transaction struct {
	ID          string      `json:"id"`
	Timestamp   UnixTime    `json:"timestamp"`
	Description string      `json:"description"`
	Completed   bool        `json:"completed"`
	Operations  []Operation `json:"operations"`
}

// Summary describes a transaction for history listings.
type Summary struct {
	ID             string
	Timestamp      time.Time
	Description    string
	OperationCount int
	Completed      bool
}

// Info describes whether an undo is currently possible.
type Info struct {
	CanUndo          bool
	TransactionCount int
	CompletedCount   int
	LastDescription  string
}
