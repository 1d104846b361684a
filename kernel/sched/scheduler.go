package sched

import (
	"unsafe"

	"rvkernel/kernel/klog"
)

// Scheduler owns the run queue and the current task. The kernel keeps
// exactly one, created at boot.
type Scheduler struct {
	rq         RunQueue
	current    *Task
	idle       *Task
	sw         ContextSwitcher
	nextThread uint32
	switches   uint64
}

func New(sw ContextSwitcher) *Scheduler {
	return &Scheduler{sw: sw, nextThread: 1}
}

// Init turns the calling context into the idle task. Its control block
// is written at the base of idle, the stack the caller is running on;
// the idle task needs no first-run frame because its registers are
// saved by the first switch away from it.
func (s *Scheduler) Init(idle Stack) (*Task, error) {
	if !idle.valid() || idle.size < TaskSize {
		return nil, ErrInvalidStack
	}
	if s.idle != nil {
		klog.Panicf("sched: init called twice")
	}
	t := placeTask(idle, TaskID{}, IdlePriority)
	t.state = Running
	if err := s.rq.Add(t); err != nil {
		return nil, err
	}
	s.idle = t
	s.current = t
	klog.Printf("sched: idle task at %p\n", idle.Base())
	return t, nil
}

// Run switches to the highest-priority registered task. The caller must
// already have moved the current task out of Running (to Ready or
// Blocked); Run does not decide that.
func (s *Scheduler) Run() {
	prev := s.current
	next := s.rq.Next()

	if next == prev {
		next.state = Running
		return
	}
	if prev.state == Running {
		klog.Panicf("sched: task %d:%d still running at switch", prev.id.Domain, prev.id.Thread)
	}
	s.check(prev)
	s.check(next)
	if next.ctx.SP%StackAlign != 0 {
		klog.Panicf("sched: task %d:%d saved sp %p misaligned", next.id.Domain, next.id.Thread, next.ctx.SP)
	}

	next.state = Running
	s.current = next
	s.switches++
	s.sw.Switch(&prev.ctx, &next.ctx)
}

// check panics if t's control block has been overwritten, which means
// the task overflowed its stack.
func (s *Scheduler) check(t *Task) {
	if !t.intact() {
		klog.Panicf("sched: stack overflow, control block at %p (prio %d) clobbered",
			uintptr(unsafe.Pointer(t)), uint8(t.prio))
	}
}

// Next returns the task Run would pick.
func (s *Scheduler) Next() *Task { return s.rq.Next() }

func (s *Scheduler) Current() *Task { return s.current }

// SetCurrent records t as the executing task without switching to it.
func (s *Scheduler) SetCurrent(t *Task) { s.current = t }

func (s *Scheduler) Idle() *Task { return s.idle }

func (s *Scheduler) RunQueue() *RunQueue { return &s.rq }

// Switches counts calls into the switch primitive.
func (s *Scheduler) Switches() uint64 { return s.switches }
