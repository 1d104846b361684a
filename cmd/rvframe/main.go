// rvframe keeps the kernel's context-switch assembly in step with the
// Go description of the saved-register frames.
//
//	rvframe offsets -o arch/offsets.h
//	rvframe layout --stack-size 4096 --entry 0x80001234
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"rvkernel/internal/config"
	"rvkernel/internal/logging"
)

type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    config.FrameConfig
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "rvframe",
		Short: "Inspect and export the RISC-V task frame layout",
		Long: `rvframe prints the layout of the first-run stack frame and the saved
thread context, and generates the offsets header the switch and
interrupt-return assembly include.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format (text, json)")

	root.AddCommand(newOffsetsCmd(a), newLayoutCmd(a))
	return root
}

// setup loads the config file, if any, and lets flags override it.
func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		a.cfg.LogFormat = a.logFormat
	}
	a.logger = logging.NewLoggerWithWriter(logging.ParseLevel(a.cfg.LogLevel), a.cfg.LogFormat, cmd.ErrOrStderr())
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rvframe: %v\n", err)
		os.Exit(1)
	}
}
