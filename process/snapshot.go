package process

import (
	"github.com/pkg/errors"
)

// NoParent marks an entry that has no parent reference, such as the idle task.
const NoParent ProcessID = -1

// Entry is one row of a process table listing: the record and the PID of its parent.
type Entry struct {
	Record ProcessRecord
	PPID   ProcessID
}

// Snapshot is an immutable point-in-time capture of the process table.
// Records keep the native enumeration order; the parent/child index is owned
// by the snapshot and resolved by PID.
type Snapshot struct {
	records  []ProcessRecord
	index    map[ProcessID]int
	parent   map[ProcessID]int
	children map[ProcessID][]int
}

// NewSnapshot builds a snapshot from a table listing. A PPID that does not
// resolve to an entry of the listing leaves the record without a parent.
// It fails with ErrInvalidSnapshot on duplicate PIDs or parent cycles.
func NewSnapshot(entries []Entry) (*Snapshot, error) {
	s := &Snapshot{
		records:  make([]ProcessRecord, 0, len(entries)),
		index:    make(map[ProcessID]int, len(entries)),
		parent:   make(map[ProcessID]int, len(entries)),
		children: make(map[ProcessID][]int),
	}

	for i, e := range entries {
		if _, dup := s.index[e.Record.PID]; dup {
			return nil, errors.Wrapf(ErrInvalidSnapshot, "duplicate pid %d", e.Record.PID)
		}
		s.index[e.Record.PID] = i
		s.records = append(s.records, e.Record)
	}

	// Children are appended in table order so each list keeps the native order.
	for i, e := range entries {
		if e.PPID == NoParent {
			continue
		}
		if e.PPID == e.Record.PID {
			return nil, errors.Wrapf(ErrInvalidSnapshot, "pid %d is its own parent", e.PPID)
		}
		p, ok := s.index[e.PPID]
		if !ok {
			continue
		}
		s.parent[e.Record.PID] = p
		s.children[e.PPID] = append(s.children[e.PPID], i)
	}

	if err := s.checkForest(); err != nil {
		return nil, err
	}

	return s, nil
}

// checkForest walks every record up to its root, failing on a cycle.
func (s *Snapshot) checkForest() error {
	done := make(map[ProcessID]bool, len(s.records))
	for _, r := range s.records {
		onPath := map[ProcessID]bool{}
		for pid := r.PID; !done[pid]; {
			if onPath[pid] {
				return errors.Wrapf(ErrInvalidSnapshot, "parent cycle through pid %d", pid)
			}
			onPath[pid] = true
			p, ok := s.parent[pid]
			if !ok {
				break
			}
			pid = s.records[p].PID
		}
		for pid := range onPath {
			done[pid] = true
		}
	}
	return nil
}

// Len returns the number of records in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Records returns a copy of the records in table order.
func (s *Snapshot) Records() []ProcessRecord {
	out := make([]ProcessRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Record returns the record with the given PID, or nil when absent.
func (s *Snapshot) Record(pid ProcessID) *ProcessRecord {
	i, ok := s.index[pid]
	if !ok {
		return nil
	}
	return s.at(i)
}

// Parent returns the parent of pid, or nil when it has none.
func (s *Snapshot) Parent(pid ProcessID) *ProcessRecord {
	p, ok := s.parent[pid]
	if !ok {
		return nil
	}
	return s.at(p)
}

// Children returns the immediate children of pid in table order.
func (s *Snapshot) Children(pid ProcessID) []*ProcessRecord {
	idx := s.children[pid]
	if len(idx) == 0 {
		return nil
	}
	out := make([]*ProcessRecord, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.at(i))
	}
	return out
}

func (s *Snapshot) at(i int) *ProcessRecord {
	r := s.records[i]
	return &r
}
