// Package process_psutil captures the process table through gopsutil, for
// hosts where procfs is not mounted in the expected layout.
package process_psutil

import (
	"procinfo/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/pkg/errors"
	psprocess "github.com/shirou/gopsutil/v3/process"
)

// defaultPrio is the static priority of a task at nice 0.
const defaultPrio = 120

// Proc is the subset of a gopsutil process the table reads.
type Proc interface {
	PID() int32
	Name() (string, error)
	Ppid() (int32, error)
	Status() ([]string, error)
	Nice() (int32, error)
}

// Lister enumerates the processes of the host.
type Lister func() ([]Proc, error)

type psProc struct {
	*psprocess.Process
}

func (p psProc) PID() int32 { return p.Pid }

// ListProcesses wraps gopsutil's process enumeration.
func ListProcesses() ([]Proc, error) {
	procs, err := psprocess.Processes()
	if err != nil {
		return nil, err
	}
	out := make([]Proc, 0, len(procs))
	for _, p := range procs {
		out = append(out, psProc{p})
	}
	return out, nil
}

// statusStates maps gopsutil status names onto kernel state bits.
var statusStates = map[string]process.ProcessState{
	"running": process.ProcessRunning,
	"sleep":   process.ProcessSleeping,
	"blocked": process.ProcessWaiting,
	"stop":    process.ProcessStopped,
	"zombie":  process.ProcessZombie,
	"idle":    process.ProcessIdle,
	"wait":    process.ProcessRunning,
	"lock":    process.ProcessWaiting,
}

// PsutilTable implements the process.ProcessTable interface on top of gopsutil.
// gopsutil does not expose real-time priorities, so every priority is derived from nice.
type PsutilTable struct {
	list Lister
	log  *logger.Logger
}

// NewPsutilTable creates a PsutilTable. A nil lister means ListProcesses.
func NewPsutilTable(list Lister) *PsutilTable {
	if list == nil {
		list = ListProcesses
	}
	return &PsutilTable{
		list: list,
		log:  logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "psutil")),
	}
}

// Snapshot captures every process gopsutil reports, preceded by the idle task.
func (t *PsutilTable) Snapshot() (*process.Snapshot, error) {
	procs, err := t.list()
	if err != nil {
		return nil, errors.Wrap(process.ErrEnumerationFailed, err.Error())
	}

	entries := make([]process.Entry, 0, len(procs)+1)
	entries = append(entries, process.Entry{Record: process.IdleRecord(), PPID: process.NoParent})

	for _, p := range procs {
		if p.PID() <= 0 {
			continue
		}
		entry, err := toEntry(p)
		if err != nil {
			t.log.Debugln("Skipping pid", p.PID(), err)
			continue
		}
		entries = append(entries, entry)
	}

	snap, err := process.NewSnapshot(entries)
	if err != nil {
		return nil, err
	}

	t.log.Infoln("Captured", snap.Len(), "processes")
	return snap, nil
}

func toEntry(p Proc) (process.Entry, error) {
	name, err := p.Name()
	if err != nil {
		return process.Entry{}, err
	}
	ppid, err := p.Ppid()
	if err != nil {
		return process.Entry{}, err
	}
	nice, err := p.Nice()
	if err != nil {
		return process.Entry{}, err
	}

	var state process.ProcessState
	if status, err := p.Status(); err == nil && len(status) > 0 {
		state = statusStates[status[0]]
	}

	n := min(max(int(nice), -20), 19)
	prio := defaultPrio + n

	return process.Entry{
		Record: process.ProcessRecord{
			Name:           process.TruncateName(name),
			PID:            process.ProcessID(p.PID()),
			State:          state,
			Priority:       prio,
			StaticPriority: prio,
			NormalPriority: prio,
		},
		PPID: process.ProcessID(ppid),
	}, nil
}
