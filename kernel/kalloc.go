//go:build tinygo && riscv64

package main

import (
	"unsafe"

	"rvkernel/kernel/klog"
	"rvkernel/kernel/sched"
)

//go:linkname get_end get_end
func get_end() uintptr

type run struct {
	next *run
}

// Pages are handed out only during boot and from the scheduler's entry
// points, all with interrupts masked, so the free list needs no lock.
type Kmem struct {
	freelist *run
	npages   int
}

var kmem Kmem

func kinit() {
	end := get_end()
	klog.Printf("kinit: [%p, %p)\n", end, PHYSTOP)
	freerange(end, PHYSTOP)
}

func freerange(pa_start uintptr, pa_end uintptr) {
	p := (pa_start + PGSIZE - 1) &^ (PGSIZE - 1)
	for ; p+PGSIZE <= pa_end; p += PGSIZE {
		kfree(p)
	}
}

func kfree(pa uintptr) {
	if pa%PGSIZE != 0 || pa < get_end() || pa >= PHYSTOP {
		klog.Panicf("kfree %p", pa)
	}
	r := (*run)(unsafe.Pointer(pa))
	r.next = kmem.freelist
	kmem.freelist = r
	kmem.npages++
}

func kalloc() uintptr {
	r := kmem.freelist
	if r == nil {
		return 0
	}
	kmem.freelist = r.next
	kmem.npages--
	return uintptr(unsafe.Pointer(r))
}

// kallocStack returns one page as a task stack, or a zero Stack when
// memory is exhausted.
func kallocStack() sched.Stack {
	pa := kalloc()
	if pa == 0 {
		return sched.Stack{}
	}
	return sched.StackAt(pa, PGSIZE)
}

// kfreeStack gives a destroyed task's page back.
func kfreeStack(s sched.Stack) {
	if s.IsZero() {
		return
	}
	kfree(s.Base())
}
