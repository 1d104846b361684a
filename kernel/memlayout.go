//go:build tinygo && riscv64

package main

// Physical memory layout of qemu -machine virt:
//
// 80000000 -- boot ROM jumps here in machine mode
//             -kernel loads the kernel here
// end      -- start of the page allocation area
// PHYSTOP  -- end of RAM used by the kernel

const PGSIZE = uintptr(4096)

const (
	KERNBASE = uintptr(0x80000000)
	PHYSTOP  = KERNBASE + 128*1024*1024
)

// entry.S runs KMain on a single boot stack of this size; it becomes the
// idle task's stack.
const STACK0SIZE = PGSIZE
