// Package report renders the process relationship report from a process table snapshot.
package report

import (
	"fmt"

	"procinfo/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/pkg/errors"
)

const (
	headerFormat = "%-16s %-8s %-8s %-8s %-8s %-8s"
	recordFormat = "%-16s %-8d %-8d %-8d %-8d %-8d"

	childrenLabel = "CHILDREN"
	parentLabel   = "PARENT"
)

// Header is the column header line preceding every process block.
var Header = fmt.Sprintf(headerFormat, "PROCESS", "PID", "STATE", "PRIO", "ST_PRIO", "NORM_PRIO")

// Generator walks a snapshot and writes one block per process above the PID floor.
type Generator struct {
	table process.ProcessTable
	log   *logger.Logger
}

// NewGenerator creates a Generator reading from table.
func NewGenerator(table process.ProcessTable) *Generator {
	return &Generator{
		table: table,
		log:   logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "report")),
	}
}

// Run captures a snapshot and writes a block for every process whose PID is
// strictly greater than minPid, in table order. When the snapshot cannot be
// captured nothing is written and the error is returned.
func (g *Generator) Run(minPid int, sink LineWriter) error {
	snap, err := g.table.Snapshot()
	if err != nil {
		return err
	}

	blocks := 0
	for _, r := range snap.Records() {
		if int(r.PID) <= minPid {
			continue
		}
		if err := writeBlock(sink, snap, &r); err != nil {
			return err
		}
		blocks++
	}

	g.log.Debugln("Reported", blocks, "of", snap.Len(), "processes above pid", minPid)
	return nil
}

// writeBlock writes the separator, header, the record itself, its children and its parent.
func writeBlock(sink LineWriter, snap *process.Snapshot, r *process.ProcessRecord) error {
	w := &lineWriter{sink: sink}
	w.line("")
	w.line(Header)
	w.record(r)

	if children := snap.Children(r.PID); len(children) > 0 {
		w.line(childrenLabel)
		for _, c := range children {
			w.record(c)
		}
	}

	if parent := snap.Parent(r.PID); parent != nil {
		w.line(parentLabel)
		w.record(parent)
	}

	return w.err
}

// FormatRecord renders the attribute line of a record. ok is false when the
// record must not be displayed.
func FormatRecord(r *process.ProcessRecord) (line string, ok bool) {
	if !r.Valid() {
		return "", false
	}
	return fmt.Sprintf(recordFormat, r.Name, r.PID, r.State, r.Priority, r.StaticPriority, r.NormalPriority), true
}

// lineWriter keeps the first write error and drops every later line.
type lineWriter struct {
	sink LineWriter
	err  error
}

func (w *lineWriter) line(s string) {
	if w.err != nil {
		return
	}
	if err := w.sink.WriteLine(s); err != nil {
		w.err = errors.Wrap(err, "write report line")
	}
}

func (w *lineWriter) record(r *process.ProcessRecord) {
	if line, ok := FormatRecord(r); ok {
		w.line(line)
	}
}
