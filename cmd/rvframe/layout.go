package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rvkernel/internal/config"
	"rvkernel/kernel/sched"
)

func newLayoutCmd(a *app) *cobra.Command {
	var (
		stackSize uint64
		entry     string
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Build a first-run frame in a host buffer and print every slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("stack-size") {
				cfg.StackSize = stackSize
			}
			if entry != "" {
				v, err := strconv.ParseUint(entry, 0, 64)
				if err != nil {
					return fmt.Errorf("parse --entry %q: %w", entry, err)
				}
				cfg.Entry = v
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return writeLayout(cmd.OutOrStdout(), cfg, a)
		},
	}
	cmd.Flags().Uint64Var(&stackSize, "stack-size", 0, "Stack region size in bytes (overrides config)")
	cmd.Flags().StringVar(&entry, "entry", "", "Entry function address, e.g. 0x80001234 (overrides config)")
	return cmd
}

func writeLayout(w io.Writer, cfg config.FrameConfig, a *app) error {
	buf := make([]byte, cfg.StackSize)
	stack := sched.StackOf(buf)
	vectors := sched.Vectors{
		Trampoline:      uintptr(cfg.Trampoline),
		InterruptReturn: uintptr(cfg.InterruptReturn),
	}

	sp, err := sched.BuildInitialFrame(stack, uintptr(cfg.Entry), vectors)
	if err != nil {
		return fmt.Errorf("build frame in %d-byte stack: %w", cfg.StackSize, err)
	}
	top := stack.Top()
	a.logger.Debug("built frame",
		"stack_size", cfg.StackSize,
		"pad", stack.Base()+stack.Size()-top,
		"depth", top-sp)

	frame := buf[sp-stack.Base():]
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "OFFSET\tFROM TOP\tFRAME\tSLOT\tVALUE\n")
	for _, s := range sched.Layout() {
		v := binary.NativeEndian.Uint64(frame[s.Offset:])
		fmt.Fprintf(tw, "sp+%d\ttop-%d\t%s\t%s\t0x%x\n", s.Offset, top-sp-s.Offset, s.Frame, s.Name, v)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\nframe: %d bytes, sp = top-%d, stack region %d bytes\n",
		sched.InitialFrameSize, top-sp, cfg.StackSize)
	return err
}
