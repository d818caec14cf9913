package process

// ProcessState is the kernel's run-state bit pattern for a task.
// The value is displayed, never interpreted.
type ProcessState int32

const (
	ProcessRunning    ProcessState = 0x0000 // R
	ProcessSleeping   ProcessState = 0x0001 // S, interruptible wait
	ProcessWaiting    ProcessState = 0x0002 // D, uninterruptible disk sleep
	ProcessStopped    ProcessState = 0x0004 // T, stopped on a signal
	ProcessTracingStp ProcessState = 0x0008 // t, tracing stop
	ProcessDead       ProcessState = 0x0010 // X
	ProcessZombie     ProcessState = 0x0020 // Z
	ProcessParked     ProcessState = 0x0040 // P
	ProcessIdle       ProcessState = 0x0402 // I, uninterruptible without load contribution
)

// stateCodes maps the /proc state letter to its kernel state bits.
var stateCodes = map[byte]ProcessState{
	'R': ProcessRunning,
	'S': ProcessSleeping,
	'D': ProcessWaiting,
	'T': ProcessStopped,
	't': ProcessTracingStp,
	'X': ProcessDead,
	'x': ProcessDead,
	'Z': ProcessZombie,
	'P': ProcessParked,
	'I': ProcessIdle,
	'W': ProcessRunning, // paging, reported by pre-2.6 kernels only
}

// StateFromCode decodes a state letter as found in /proc/<pid>/stat.
// Unknown codes yield ProcessRunning and false.
func StateFromCode(code byte) (ProcessState, bool) {
	state, ok := stateCodes[code]
	return state, ok
}
