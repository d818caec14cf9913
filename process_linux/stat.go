//go:build linux

package process_linux

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"procinfo/process"
)

// Offsets into the fields following the comm in /proc/<pid>/stat.
// Field N of proc(5) is at index N-3.
const (
	statState      = 0  // (3) state
	statPPID       = 1  // (4) ppid
	statPriority   = 15 // (18) priority, prio - MAX_RT_PRIO
	statNice       = 16 // (19) nice
	statRTPriority = 37 // (40) rt_priority, since 2.5.19
	statPolicy     = 38 // (41) policy, since 2.5.19
)

const (
	maxRTPrio   = 100 // MAX_RT_PRIO
	defaultPrio = 120 // DEFAULT_PRIO, static priority at nice 0

	schedFIFO     = 1
	schedRR       = 2
	schedDeadline = 6
)

// readStat reads /proc/<pid>/stat under root and converts it into an entry.
func readStat(root string, pid process.ProcessID) (process.Entry, error) {
	data, err := os.ReadFile(filepath.Join(root, strconv.Itoa(int(pid)), "stat"))
	if err != nil {
		return process.Entry{}, err
	}
	return parseStat(pid, data)
}

// parseStat parses the contents of a stat file.
// The comm may contain spaces and parentheses, so it runs from the first '(' to the last ')'.
func parseStat(pid process.ProcessID, data []byte) (process.Entry, error) {
	data = bytesTrimNL(data)

	open := bytes.IndexByte(data, '(')
	end := bytes.LastIndexByte(data, ')')
	if open < 0 || end < open {
		return process.Entry{}, fmt.Errorf("stat for pid %d: malformed comm", pid)
	}
	name := string(data[open+1 : end])

	fields := bytes.Fields(data[end+1:])
	if len(fields) <= statNice {
		return process.Entry{}, fmt.Errorf("stat for pid %d: %d fields, want at least %d", pid, len(fields), statNice+1)
	}

	ppid, err := atoi(fields, statPPID)
	if err != nil {
		return process.Entry{}, fmt.Errorf("stat for pid %d: ppid: %w", pid, err)
	}
	kprio, err := atoi(fields, statPriority)
	if err != nil {
		return process.Entry{}, fmt.Errorf("stat for pid %d: priority: %w", pid, err)
	}
	nice, err := atoi(fields, statNice)
	if err != nil {
		return process.Entry{}, fmt.Errorf("stat for pid %d: nice: %w", pid, err)
	}

	// Older kernels stop before rt_priority and policy; treat them as SCHED_OTHER.
	var rtPrio, policy int
	if len(fields) > statPolicy {
		rtPrio, _ = atoi(fields, statRTPriority)
		policy, _ = atoi(fields, statPolicy)
	}

	var state process.ProcessState
	if len(fields[statState]) > 0 {
		state, _ = process.StateFromCode(fields[statState][0])
	}

	staticPrio := defaultPrio + nice

	return process.Entry{
		Record: process.ProcessRecord{
			Name:           process.TruncateName(name),
			PID:            pid,
			State:          state,
			Priority:       kprio + maxRTPrio,
			StaticPriority: staticPrio,
			NormalPriority: normalPriority(policy, rtPrio, staticPrio),
		},
		PPID: process.ProcessID(ppid),
	}, nil
}

// normalPriority mirrors the kernel's normal_prio(): RT tasks derive it from
// rt_priority, deadline tasks sit below every RT priority, others use static_prio.
func normalPriority(policy, rtPrio, staticPrio int) int {
	switch policy {
	case schedFIFO, schedRR:
		return maxRTPrio - 1 - rtPrio
	case schedDeadline:
		return -1
	default:
		return staticPrio
	}
}

func atoi(fields [][]byte, i int) (int, error) {
	return strconv.Atoi(string(fields[i]))
}

func bytesTrimNL(b []byte) []byte {
	for len(b) > 0 {
		switch b[len(b)-1] {
		case '\n', '\r', ' ', '\t':
			b = b[:len(b)-1]
		default:
			return b
		}
	}
	return b
}
