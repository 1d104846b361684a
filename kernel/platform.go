//go:build tinygo && riscv64

package main

import (
	_ "unsafe"

	"rvkernel/kernel/sched"
)

// Implemented in arch/switch.S. Offsets come from cmd/rvframe offsets.

//go:linkname switch_to _switch_to
func switch_to(prev *sched.Context, next *sched.Context)

//go:linkname get_task_runtime get_task_runtime
func get_task_runtime() uintptr

//go:linkname get_ret_from_interrupt get_ret_from_interrupt
func get_ret_from_interrupt() uintptr

//go:linkname get_stack0 get_stack0
func get_stack0() uintptr

//go:linkname wfi wfi
func wfi()

type riscvSwitcher struct{}

func (riscvSwitcher) Switch(prev, next *sched.Context) { switch_to(prev, next) }

func (riscvSwitcher) Vectors() sched.Vectors {
	return sched.Vectors{
		Trampoline:      get_task_runtime(),
		InterruptReturn: get_ret_from_interrupt(),
	}
}
