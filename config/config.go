package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Sources of the process table.
const (
	SourceProcfs = "procfs"
	SourcePsutil = "psutil"
	SourceStatic = "static"
)

// Report destinations.
const (
	SinkStdout = "stdout"
	SinkLog    = "log"
)

// EnvPrefix prefixes every environment override, e.g. PROCINFO_MIN_PID.
const EnvPrefix = "PROCINFO"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the run configuration of the process report.
type Config struct {
	MinPID   int    `mapstructure:"min_pid"`
	Source   string `mapstructure:"source"`
	ProcRoot string `mapstructure:"proc_root"`
	From     string `mapstructure:"from"`
	Sink     string `mapstructure:"sink"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"min-pid":   "min_pid",
	"source":    "source",
	"proc-root": "proc_root",
	"from":      "from",
	"sink":      "sink",
}

// RegisterFlags declares the command line flags of every config key.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.Int("min-pid", 0, "report processes whose PID is greater than this value")
	flags.String("source", SourceProcfs, "process table source: procfs, psutil or static")
	flags.String("proc-root", "/proc", "procfs mount point for the procfs source")
	flags.String("from", "", "JSON process table for the static source")
	flags.String("sink", SinkStdout, "report destination: stdout or log")
}

// Load resolves the configuration. Flags that were set override environment
// variables, which override the optional config file, which overrides defaults.
func Load(flags *pflag.FlagSet, configFile string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetDefault("min_pid", 0)
	v.SetDefault("source", SourceProcfs)
	v.SetDefault("proc_root", "/proc")
	v.SetDefault("from", "")
	v.SetDefault("sink", SinkStdout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return cfg, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return cfg, errors.Wrapf(ErrInvalidConfig, "read %s: %v", configFile, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrapf(ErrInvalidConfig, "decode: %v", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.Source {
	case SourceProcfs, SourcePsutil:
	case SourceStatic:
		if c.From == "" {
			return errors.Wrap(ErrInvalidConfig, "static source needs a table file")
		}
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown source %q", c.Source)
	}

	switch c.Sink {
	case SinkStdout, SinkLog:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown sink %q", c.Sink)
	}
	return nil
}
