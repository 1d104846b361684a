package sched

import (
	"reflect"
	"testing"
)

func testTaskEntry() {}

func TestDestroy(t *testing.T) {
	s, _ := newTestScheduler(t)
	task := mustCreate(t, s, 6)
	want := task.Stack()

	stack, err := s.Destroy(task)
	if err != nil {
		t.Fatal(err)
	}
	if stack != want {
		t.Errorf("returned stack %v, want %v", stack, want)
	}
	if s.RunQueue().At(6) != nil {
		t.Error("destroyed task still registered")
	}
	if err := s.Wakeup(task); err != ErrNotBlocked {
		t.Errorf("Wakeup after destroy = %v", err)
	}

	// The slot is free again.
	if _, err := s.Create(0x1000, stack, Attr{Priority: 6}); err != nil {
		t.Errorf("reuse of returned stack: %v", err)
	}
}

func TestDestroyTwice(t *testing.T) {
	s, _ := newTestScheduler(t)
	task := mustCreate(t, s, 6)

	if _, err := s.Destroy(task); err != nil {
		t.Fatal(err)
	}
	stack, err := s.Destroy(task)
	if err != ErrDestroyed {
		t.Fatalf("second destroy = %v, want ErrDestroyed", err)
	}
	if !stack.IsZero() {
		t.Errorf("second destroy handed back %v", stack)
	}
}

func TestDestroyRejects(t *testing.T) {
	s, _ := newTestScheduler(t)
	task := mustCreate(t, s, 6)

	if _, err := s.Destroy(s.Idle()); err != ErrIdleTask {
		t.Errorf("destroy idle = %v", err)
	}

	s.Yield()
	if s.Current() != task {
		t.Fatal("task not running")
	}
	if _, err := s.Destroy(task); err != ErrDestroyRunningTask {
		t.Errorf("destroy running = %v", err)
	}
	if s.RunQueue().At(6) != task {
		t.Error("running task unregistered by rejected destroy")
	}
}

func TestDestroyBlocked(t *testing.T) {
	s, _ := newTestScheduler(t)
	task := mustCreate(t, s, 6)
	s.Yield()
	s.Sleep()
	if _, err := s.Destroy(task); err != nil {
		t.Errorf("destroy blocked = %v", err)
	}
}

func TestSleepIdle(t *testing.T) {
	s, _ := newTestScheduler(t)
	if err := s.Sleep(); err != ErrIdleTask {
		t.Errorf("err = %v", err)
	}
	if s.RunQueue().At(IdlePriority) != s.Idle() {
		t.Error("idle task left the run queue")
	}
}

func TestWakeupRejects(t *testing.T) {
	s, _ := newTestScheduler(t)
	task := mustCreate(t, s, 7)
	if err := s.Wakeup(task); err != ErrNotBlocked {
		t.Errorf("wakeup ready task = %v", err)
	}

	s.Yield()
	if err := s.Sleep(); err != nil {
		t.Fatal(err)
	}

	// Another task took priority 7 while the first was blocked.
	other := mustCreate(t, s, 7)
	if err := s.Wakeup(task); err != ErrSlotConflict {
		t.Errorf("wakeup into occupied slot = %v", err)
	}
	if task.State() != Blocked || s.RunQueue().At(7) != other {
		t.Error("conflicting wakeup changed state")
	}
}

func TestErrorStrings(t *testing.T) {
	for e := ErrInvalidStack; e <= ErrDestroyed; e++ {
		if msg := e.Error(); msg == "" || msg == "sched: unknown error" {
			t.Errorf("Error(%d) = %q", e, msg)
		}
	}
	if Error(0).Error() != "sched: unknown error" {
		t.Error("zero error has a name")
	}
}

func TestEntryOfMatchesReflect(t *testing.T) {
	got := EntryOf(testTaskEntry)
	want := reflect.ValueOf(testTaskEntry).Pointer()
	if got == 0 || got != want {
		t.Fatalf("EntryOf = 0x%x, want 0x%x", got, want)
	}
	if EntryOf(nil) != 0 {
		t.Error("EntryOf(nil) != 0")
	}
}
