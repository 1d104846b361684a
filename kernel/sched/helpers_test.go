package sched

import (
	"testing"
	"unsafe"
)

var testVectors = Vectors{Trampoline: 0x80000100, InterruptReturn: 0x80000200}

// simCPU stands in for the switch primitive: it keeps one set of live
// registers and swaps them with the saved contexts.
type simCPU struct {
	live  Context
	trace []TaskID
	owner map[*Context]TaskID
}

func (c *simCPU) Switch(prev, next *Context) {
	*prev = c.live
	c.live = *next
	if id, ok := c.owner[next]; ok {
		c.trace = append(c.trace, id)
	}
}

func (c *simCPU) Vectors() Vectors { return testVectors }

func (c *simCPU) track(t *Task) {
	if c.owner == nil {
		c.owner = make(map[*Context]TaskID)
	}
	c.owner[t.Context()] = t.ID()
}

// alignedBuf returns n bytes starting on a 16-byte boundary.
func alignedBuf(n int) []byte {
	raw := make([]byte, n+StackAlign)
	off := int(alignDown(uintptr(unsafe.Pointer(&raw[0]))+StackAlign-1, StackAlign) - uintptr(unsafe.Pointer(&raw[0])))
	return raw[off : off+n]
}

func newTestScheduler(t *testing.T) (*Scheduler, *simCPU) {
	t.Helper()
	cpu := &simCPU{}
	s := New(cpu)
	idle, err := s.Init(StackOf(alignedBuf(1024)))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	cpu.track(idle)
	return s, cpu
}

func mustCreate(t *testing.T, s *Scheduler, prio Priority) *Task {
	t.Helper()
	task, err := s.Create(0x80001000+uintptr(prio), StackOf(alignedBuf(4096)), Attr{Domain: 1, Priority: prio})
	if err != nil {
		t.Fatalf("Create(prio %d): %v", prio, err)
	}
	if cpu, ok := s.sw.(*simCPU); ok {
		cpu.track(task)
	}
	return task
}

func expectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic")
		}
	}()
	fn()
}
