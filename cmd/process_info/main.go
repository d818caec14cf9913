package main

import (
	"fmt"
	"io"
	"os"

	"procinfo/config"
	"procinfo/process"
	"procinfo/process_psutil"
	"procinfo/report"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	exitOK          = 0
	exitEnumeration = 1
	exitConfig      = 2
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command and maps its outcome onto an exit status.
func execute(args []string, stdout, stderr io.Writer) int {
	var configFile string

	cmd := &cobra.Command{
		Use:           "process_info",
		Short:         "Report every process above a PID floor with its parent and children",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags(), configFile)
			if err != nil {
				return err
			}
			return start(cfg, stdout)
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().StringVar(&configFile, "config", "", "optional config file (toml, yaml or json)")
	config.RegisterFlags(cmd.Flags())

	err := cmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case process.IsEnumerationError(err):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitEnumeration
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitConfig
	}
}

// start is the load hook: it captures the process table and writes the report.
func start(cfg config.Config, stdout io.Writer) error {
	log := logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "process_info"))

	log.Infoln("Loading Module")
	defer stop(log)

	table, err := newTable(cfg)
	if err != nil {
		return err
	}

	var sink report.LineWriter = report.NewWriterSink(stdout)
	if cfg.Sink == config.SinkLog {
		sink = report.NewLoggerSink(log)
	}

	if err := report.NewGenerator(table).Run(cfg.MinPID, sink); err != nil {
		if process.IsEnumerationError(err) {
			return err
		}
		return errors.Wrap(err, "write report")
	}
	return nil
}

// stop is the unload hook.
func stop(log *logger.Logger) {
	log.Infoln("Removing Module")
}

func newTable(cfg config.Config) (process.ProcessTable, error) {
	switch cfg.Source {
	case config.SourcePsutil:
		return process_psutil.NewPsutilTable(nil), nil
	case config.SourceStatic:
		return process.LoadStaticTable(cfg.From)
	default:
		return procfsTable(cfg.ProcRoot), nil
	}
}
