// Package sched is the fixed-priority scheduling core: task control
// blocks, first-run stack frames, the priority run queue and the
// scheduler that drives the architecture's context switch.
//
// Every mutation of a Scheduler must happen on one core with interrupts
// masked. The package does not mask them itself.
package sched

import "unsafe"

type Priority uint8

const (
	IdlePriority  Priority = 0
	MaxPriority   Priority = 255
	NumPriorities          = int(MaxPriority) + 1
)

type State uint8

const (
	Ready State = iota
	Running
	Blocked
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Blocked:
		return "blocked"
	}
	return "unknown"
}

// TaskID is unique within the system and never changes.
type TaskID struct {
	Domain uint32
	Thread uint32
}

// Context is the saved machine state of a task that is not running:
// its stack pointer and the callee-saved registers s0..s11.
type Context struct {
	SP uintptr
	S  [12]uintptr
}

const stackGuard = 0x5ca1ab1e_0ddba11

// Task is the control block of one schedulable unit. It holds no Go
// pointers because it lives at the base of the task's own stack, which
// is caller memory.
type Task struct {
	id        TaskID
	prio      Priority
	state     State
	ctx       Context
	stackSize uintptr

	// guard is the highest word of the control block, so a task running
	// off the bottom of its stack overwrites it first.
	guard uint64
}

// TaskSize is the number of bytes the control block takes at the base
// of a stack region.
const TaskSize = unsafe.Sizeof(Task{})

func (t *Task) ID() TaskID         { return t.id }
func (t *Task) Priority() Priority { return t.prio }
func (t *Task) State() State       { return t.state }

// SavedContext returns a copy of the saved registers. It is only
// meaningful while the task is not running.
func (t *Task) SavedContext() Context { return t.ctx }

// Context returns the save area handed to the switch primitive.
func (t *Task) Context() *Context { return &t.ctx }

// Stack returns the region the task was created on.
func (t *Task) Stack() Stack {
	return Stack{base: unsafe.Pointer(t), size: t.stackSize}
}

func (t *Task) intact() bool { return t.guard == stackGuard }

// Stack is a caller-owned memory region. The scheduler uses it for the
// lifetime of a task but never allocates or frees it.
type Stack struct {
	base unsafe.Pointer
	size uintptr
}

// StackOf wraps a byte slice. The slice must outlive the task.
func StackOf(buf []byte) Stack {
	if len(buf) == 0 {
		return Stack{}
	}
	return Stack{base: unsafe.Pointer(&buf[0]), size: uintptr(len(buf))}
}

// StackAt wraps a physical region, typically a page from the allocator.
func StackAt(addr, size uintptr) Stack {
	return Stack{base: unsafe.Pointer(addr), size: size}
}

func (s Stack) Base() uintptr { return uintptr(s.base) }
func (s Stack) Size() uintptr { return s.size }
func (s Stack) IsZero() bool  { return s.base == nil && s.size == 0 }

// Top is the 16-byte aligned upper bound stacks grow down from.
func (s Stack) Top() uintptr {
	return alignDown(uintptr(s.base)+s.size, StackAlign)
}

func (s Stack) valid() bool {
	return s.base != nil && s.size != 0 && uintptr(s.base)%WordSize == 0
}

// placeTask writes a fresh control block at the base of s.
func placeTask(s Stack, id TaskID, prio Priority) *Task {
	t := (*Task)(s.base)
	*t = Task{
		id:        id,
		prio:      prio,
		state:     Ready,
		stackSize: s.size,
		guard:     stackGuard,
	}
	return t
}

func alignDown(v, a uintptr) uintptr { return v &^ (a - 1) }
