//go:build tinygo

package sched

import "unsafe"

// tinygo passes func values as a (context, code) pair.
type funcValue struct {
	context unsafe.Pointer
	fn      uintptr
}

// EntryOf returns the code address of fn. fn must be a top-level
// function; its context word is dropped.
func EntryOf(fn func()) uintptr {
	if fn == nil {
		return 0
	}
	return (*funcValue)(unsafe.Pointer(&fn)).fn
}
