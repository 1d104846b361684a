//go:build tinygo && riscv64

package main

import (
	_ "unsafe"

	"rvkernel/kernel/klog"
	"rvkernel/kernel/sched"
)

//go:linkname trapinithart trapinithart
func trapinithart()

//go:linkname r_scause r_scause
func r_scause() uintptr

//go:linkname r_sepc r_sepc
func r_sepc() uintptr

//go:linkname r_sip r_sip
func r_sip() uintptr

//go:linkname w_sip w_sip
func w_sip(x uintptr)

var ticks uint64

//go:nosplit
//export Kerneltrap
func Kerneltrap() {
	w_sip(r_sip() & ^uintptr(2))

	scause := r_scause()
	sepc := r_sepc()

	// timer interrupt
	if scause == 0x8000000000000005 || scause == 0x8000000000000001 {
		ticks++
		if kern != nil && kern.Current().State() == sched.Running {
			tick()
		}
	} else {
		klog.Printf("Kerneltrap %x at %x\n", scause, sepc)
		for {
		}
	}
}
