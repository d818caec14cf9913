package report

import (
	"io"
	"sync"

	"github.com/Moonlight-Companies/gologger/logger"
)

// LineWriter receives report lines in order. Lines carry no terminator.
type LineWriter interface {
	WriteLine(line string) error
}

// WriterSink writes newline terminated lines to an io.Writer.
type WriterSink struct {
	w io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) WriteLine(line string) error {
	_, err := io.WriteString(s.w, line+"\n")
	return err
}

// LoggerSink sends every line through a gologger logger, the way a kernel
// module would fill the log buffer.
type LoggerSink struct {
	log *logger.Logger
}

func NewLoggerSink(log *logger.Logger) *LoggerSink {
	return &LoggerSink{log: log}
}

func (s *LoggerSink) WriteLine(line string) error {
	s.log.Infoln(line)
	return nil
}

// Buffer collects lines in memory.
type Buffer struct {
	mu    sync.Mutex
	lines []string
}

func (b *Buffer) WriteLine(line string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
	return nil
}

// Lines returns a copy of the collected lines.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}
