package process

// ProcessID represents a unique identifier for a process
type ProcessID int

// IdlePID is the identifier of the scheduler's idle task.
const IdlePID ProcessID = 0

// IdleName is the comm of the idle task on CPU 0.
const IdleName = "swapper/0"

// MaxNameLength is the number of visible characters the kernel keeps for a
// task's comm (TASK_COMM_LEN minus the terminator).
const MaxNameLength = 15

// ProcessRecord contains the identity and scheduling attributes of one process.
// Relationships are resolved through the Snapshot that owns the record.
type ProcessRecord struct {
	Name           string       `json:"name"`
	PID            ProcessID    `json:"pid"`
	State          ProcessState `json:"state"`
	Priority       int          `json:"prio"`
	StaticPriority int          `json:"static_prio"`
	NormalPriority int          `json:"normal_prio"`
}

// Valid reports whether the record may be displayed.
// A nil record or one with a non-positive PID never is.
func (r *ProcessRecord) Valid() bool {
	return r != nil && r.PID > 0
}

// TruncateName clips a name to MaxNameLength bytes.
func TruncateName(name string) string {
	if len(name) > MaxNameLength {
		return name[:MaxNameLength]
	}
	return name
}

// IdleRecord returns the synthetic record for the idle task. /proc does not
// list it, but it is the parent of every task whose parent PID is 0.
func IdleRecord() ProcessRecord {
	return ProcessRecord{
		Name:           IdleName,
		PID:            IdlePID,
		State:          ProcessRunning,
		Priority:       120,
		StaticPriority: 120,
		NormalPriority: 120,
	}
}
