package process

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// ProcessTable defines the operation for capturing the process table
type ProcessTable interface {
	// Snapshot captures every process visible to the current execution context
	// together with its parent/child relationships.
	Snapshot() (*Snapshot, error)
}

// StaticTable is a ProcessTable over a fixed listing.
type StaticTable struct {
	Entries []Entry
	Err     error // returned by Snapshot instead of a snapshot when set
}

// NewStaticTable creates a StaticTable over entries.
func NewStaticTable(entries ...Entry) *StaticTable {
	return &StaticTable{Entries: entries}
}

// Snapshot builds a snapshot from the fixed listing.
func (t *StaticTable) Snapshot() (*Snapshot, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	return NewSnapshot(t.Entries)
}

// fixtureEntry is the on-disk form of an Entry. A missing ppid means no parent.
type fixtureEntry struct {
	ProcessRecord
	PPID *ProcessID `json:"ppid"`
}

// LoadStaticTable reads a JSON array of records, each with an optional "ppid",
// and returns a table replaying it.
func LoadStaticTable(path string) (*StaticTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrEnumerationFailed, "read fixture %s: %v", path, err)
	}

	var rows []fixtureEntry
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrapf(ErrEnumerationFailed, "decode fixture %s: %v", path, err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		e := Entry{Record: row.ProcessRecord, PPID: NoParent}
		e.Record.Name = TruncateName(e.Record.Name)
		if row.PPID != nil {
			e.PPID = *row.PPID
		}
		entries = append(entries, e)
	}

	return NewStaticTable(entries...), nil
}
