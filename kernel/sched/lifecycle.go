package sched

import (
	"unsafe"

	"rvkernel/kernel/klog"
)

// Attr is what the surrounding kernel decides about a new task.
type Attr struct {
	Domain   uint32
	Priority Priority
}

// Create places a control block at the base of stack, builds a first-run
// frame for entry at its top and registers the task as Ready. Nothing is
// written to stack unless every check passes.
func (s *Scheduler) Create(entry uintptr, stack Stack, attr Attr) (*Task, error) {
	if entry == 0 {
		return nil, ErrInvalidEntry
	}
	if !stack.valid() || stack.size < TaskSize {
		return nil, ErrInvalidStack
	}
	if s.rq.At(attr.Priority) != nil {
		return nil, ErrSlotConflict
	}

	frames := Stack{
		base: unsafe.Add(stack.base, TaskSize),
		size: stack.size - TaskSize,
	}
	// Validate the fit before touching memory; BuildInitialFrame writes.
	if frames.Top() < uintptr(frames.base)+InitialFrameSize {
		return nil, ErrInvalidStack
	}

	id := TaskID{Domain: attr.Domain, Thread: s.nextThread}
	t := placeTask(stack, id, attr.Priority)
	sp, err := BuildInitialFrame(frames, entry, s.sw.Vectors())
	if err != nil {
		return nil, err
	}
	t.ctx.SP = sp
	if err := s.rq.Add(t); err != nil {
		return nil, err
	}
	s.nextThread++

	klog.Printf("sched: created task %d:%d prio %d sp %p\n", id.Domain, id.Thread, uint8(attr.Priority), sp)
	return t, nil
}

// Destroy unregisters t and hands its stack back to the caller. A task
// cannot destroy itself while running; it has to be switched away from
// first. The idle task is never destroyed, and a stack is handed back
// only once.
func (s *Scheduler) Destroy(t *Task) (Stack, error) {
	if t == s.idle {
		return Stack{}, ErrIdleTask
	}
	if !t.intact() {
		return Stack{}, ErrDestroyed
	}
	if t.state == Running {
		return Stack{}, ErrDestroyRunningTask
	}
	s.rq.Remove(t)
	stack := t.Stack()
	t.state = Blocked
	t.guard = 0
	klog.Printf("sched: destroyed task %d:%d\n", t.id.Domain, t.id.Thread)
	return stack, nil
}

// Yield gives up the processor to the highest-priority task, which may
// be the caller itself.
func (s *Scheduler) Yield() {
	cur := s.current
	cur.state = Ready
	if err := s.rq.Add(cur); err != nil {
		klog.Panicf("sched: yield: task %d:%d lost its slot", cur.id.Domain, cur.id.Thread)
	}
	s.Run()
}

// Sleep blocks the current task until Wakeup is called on it. It returns
// once the task has been woken and scheduled again.
func (s *Scheduler) Sleep() error {
	cur := s.current
	if cur == s.idle {
		return ErrIdleTask
	}
	cur.state = Blocked
	s.rq.Remove(cur)
	klog.Printf("sched: task %d:%d blocked\n", cur.id.Domain, cur.id.Thread)
	s.Run()
	return nil
}

// Wakeup makes a blocked task Ready again. It does not reschedule; a
// woken task with higher priority runs at the next Yield or tick.
func (s *Scheduler) Wakeup(t *Task) error {
	if t.state != Blocked || !t.intact() {
		return ErrNotBlocked
	}
	if err := s.rq.Add(t); err != nil {
		return err
	}
	t.state = Ready
	klog.Printf("sched: task %d:%d woken\n", t.id.Domain, t.id.Thread)
	return nil
}
