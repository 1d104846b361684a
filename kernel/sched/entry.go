//go:build !tinygo

package sched

import "unsafe"

// EntryOf returns the code address of fn, suitable as a task entry.
// fn must be a top-level function; a closure's captured variables would
// not reach the task.
func EntryOf(fn func()) uintptr {
	if fn == nil {
		return 0
	}
	fnVal := *(*unsafe.Pointer)(unsafe.Pointer(&fn))
	if fnVal == nil {
		return 0
	}
	return *(*uintptr)(fnVal)
}
