package sched

// Vectors are the fixed code addresses a first-run frame resumes
// through.
type Vectors struct {
	// Trampoline is loaded into pc from the kernel frame. It moves the
	// caller frame's a0 into the argument register and calls the entry.
	Trampoline uintptr

	// InterruptReturn is the stub the resume path returns into after
	// restoring s0..s11.
	InterruptReturn uintptr
}

// ContextSwitcher is the architecture's save/restore primitive.
//
// Switch stores the live stack pointer and callee-saved registers into
// prev and loads them from next. From the caller's side it returns only
// when some other task switches back to prev, possibly much later.
type ContextSwitcher interface {
	Switch(prev, next *Context)
	Vectors() Vectors
}
