//go:build linux

package process_linux

import (
	"os"
	"strconv"

	"procinfo/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/pkg/errors"
)

// DefaultRoot is the mount point of procfs.
const DefaultRoot = "/proc"

// ProcTable implements the process.ProcessTable interface by reading procfs
type ProcTable struct {
	root string
	log  *logger.Logger
}

// NewProcTable creates a ProcTable reading the procfs mounted at root.
// An empty root means DefaultRoot.
func NewProcTable(root string) *ProcTable {
	if root == "" {
		root = DefaultRoot
	}
	return &ProcTable{
		root: root,
		log:  logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "procfs")),
	}
}

// Root returns the procfs mount point being read.
func (t *ProcTable) Root() string {
	return t.root
}

// Snapshot captures every process listed under the procfs root, preceded by
// the idle task which procfs does not list.
func (t *ProcTable) Snapshot() (*process.Snapshot, error) {
	if err := checkAccess(t.root); err != nil {
		return nil, err
	}

	// Open+ReadDir keeps the directory order; os.ReadDir would sort names lexically.
	dir, err := os.Open(t.root)
	if err != nil {
		return nil, classify(t.root, err)
	}
	defer dir.Close()

	dirEntries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, classify(t.root, err)
	}

	entries := make([]process.Entry, 0, len(dirEntries)+1)
	entries = append(entries, process.Entry{Record: process.IdleRecord(), PPID: process.NoParent})

	skipped := 0
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}

		pid, err := strconv.Atoi(de.Name())
		if err != nil || pid <= 0 {
			continue // not a PID dir
		}

		entry, err := readStat(t.root, process.ProcessID(pid))
		if err != nil {
			// Process may have terminated while we were reading
			t.log.Debugln("Skipping pid", pid, err)
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 1 {
		return nil, errors.Wrapf(process.ErrEnumerationFailed, "no processes readable under %s", t.root)
	}

	snap, err := process.NewSnapshot(entries)
	if err != nil {
		return nil, err
	}

	t.log.Infoln("Captured", snap.Len(), "processes from", t.root, "skipped", skipped)
	return snap, nil
}
