//go:build tinygo && riscv64

package main

import (
	_ "unsafe"

	"rvkernel/kernel/klog"
)

//go:linkname intr_on intr_on
func intr_on()

//go:linkname intr_off intr_off
func intr_off()

//go:linkname intr_get intr_get
func intr_get() bool

// Nesting depth of push_off and whether interrupts were on before the
// outermost push. One hart, so plain globals.
var (
	noff   int
	intena bool
)

// push_off/pop_off are matched intr_off/intr_on: it takes two pop_offs
// to undo two push_offs, and interrupts stay off if they started off.
func push_off() {
	old := intr_get()
	intr_off()
	if noff == 0 {
		intena = old
	}
	noff++
}

func pop_off() {
	if intr_get() {
		klog.Panicf("pop_off - interruptible")
	}
	if noff < 1 {
		klog.Panicf("pop_off")
	}
	noff--
	if noff == 0 && intena {
		intr_on()
	}
}
