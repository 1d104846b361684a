package sched

import "unsafe"

const (
	WordSize   = 8
	StackAlign = 16
)

// The first-run frame, from the saved stack pointer upward. The external
// resume path pops it in exactly this order; changing a field here means
// changing the assembly (regenerate its offsets with cmd/rvframe).
//
//	sp ->  CalleeFrame      s0..s11
//	       InterruptReturn  where the resume path returns after s11
//	       CallerFrame      t0..t6, a0..a7 (a0 = entry)
//	       KernelFrame      pc = trampoline, ra = 0
//	top -> (16-byte aligned)

type CalleeFrame struct {
	S [12]uint64
}

type CallerFrame struct {
	T [7]uint64
	A [8]uint64
}

type KernelFrame struct {
	PC uint64
	RA uint64
}

type InitialFrame struct {
	Callee          CalleeFrame
	InterruptReturn uint64
	Caller          CallerFrame
	Kernel          KernelFrame
}

const InitialFrameSize = 30 * WordSize

// Fail the build if the struct layout drifts from the contract.
var (
	_ = [1]struct{}{}[InitialFrameSize-unsafe.Sizeof(InitialFrame{})]
	_ = [1]struct{}{}[unsafe.Sizeof(InitialFrame{})-InitialFrameSize]
	_ = [1]struct{}{}[unsafe.Sizeof(InitialFrame{})%StackAlign]
)

// BuildInitialFrame lays out a first-run frame at the top of stack so the
// generic resume path lands in the trampoline with entry in a0. It
// returns the stack pointer the frame starts at.
func BuildInitialFrame(stack Stack, entry uintptr, v Vectors) (uintptr, error) {
	if !stack.valid() {
		return 0, ErrInvalidStack
	}
	base := uintptr(stack.base)
	top := stack.Top()
	if top < base+InitialFrameSize {
		return 0, ErrInvalidStack
	}
	sp := top - InitialFrameSize

	f := (*InitialFrame)(unsafe.Add(stack.base, sp-base))
	*f = InitialFrame{}
	f.Kernel.PC = uint64(v.Trampoline)
	f.Kernel.RA = 0
	f.Caller.A[0] = uint64(entry)
	f.InterruptReturn = uint64(v.InterruptReturn)
	return sp, nil
}

// FrameAt returns the frame stored at sp inside stack, or nil if a whole
// frame does not fit there.
func FrameAt(stack Stack, sp uintptr) *InitialFrame {
	base := uintptr(stack.base)
	if stack.base == nil || sp < base || sp+InitialFrameSize > base+stack.size {
		return nil
	}
	return (*InitialFrame)(unsafe.Add(stack.base, sp-base))
}

// Slot describes one word of a saved-state layout.
type Slot struct {
	Frame  string  // frame the slot belongs to, e.g. "callee"
	Name   string  // register name, e.g. "s0"
	Offset uintptr // from the start of the enclosing layout
	Rel    uintptr // from the start of Frame
}

var (
	calleeRegs = [12]string{"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11"}
	tempRegs   = [7]string{"t0", "t1", "t2", "t3", "t4", "t5", "t6"}
	argRegs    = [8]string{"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7"}
)

// Layout lists every slot of InitialFrame in address order.
func Layout() []Slot {
	var f InitialFrame
	slots := make([]Slot, 0, InitialFrameSize/WordSize)

	callee := unsafe.Offsetof(f.Callee)
	for i, name := range calleeRegs {
		rel := unsafe.Offsetof(f.Callee.S) + uintptr(i)*WordSize
		slots = append(slots, Slot{"callee", name, callee + rel, rel})
	}

	slots = append(slots, Slot{"ret", "ret_from_interrupt", unsafe.Offsetof(f.InterruptReturn), 0})

	caller := unsafe.Offsetof(f.Caller)
	for i, name := range tempRegs {
		rel := unsafe.Offsetof(f.Caller.T) + uintptr(i)*WordSize
		slots = append(slots, Slot{"caller", name, caller + rel, rel})
	}
	for i, name := range argRegs {
		rel := unsafe.Offsetof(f.Caller.A) + uintptr(i)*WordSize
		slots = append(slots, Slot{"caller", name, caller + rel, rel})
	}

	kernel := unsafe.Offsetof(f.Kernel)
	slots = append(slots,
		Slot{"kernel", "pc", kernel + unsafe.Offsetof(f.Kernel.PC), unsafe.Offsetof(f.Kernel.PC)},
		Slot{"kernel", "ra", kernel + unsafe.Offsetof(f.Kernel.RA), unsafe.Offsetof(f.Kernel.RA)},
	)
	return slots
}

// ContextLayout lists the slots of Context, which the switch primitive
// reads and writes.
func ContextLayout() []Slot {
	var c Context
	slots := []Slot{{"thread", "sp", unsafe.Offsetof(c.SP), unsafe.Offsetof(c.SP)}}
	for i, name := range calleeRegs {
		off := unsafe.Offsetof(c.S) + uintptr(i)*WordSize
		slots = append(slots, Slot{"thread", name, off, off})
	}
	return slots
}

// FrameSizes reports the length of each sub-frame in bytes.
func FrameSizes() (callee, caller, kernel uintptr) {
	return unsafe.Sizeof(CalleeFrame{}), unsafe.Sizeof(CallerFrame{}), unsafe.Sizeof(KernelFrame{})
}
