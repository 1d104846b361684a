//go:build tinygo && riscv64

package main

import (
	_ "unsafe"

	"rvkernel/kernel/klog"
	"rvkernel/kernel/sched"
)

// kern is the only scheduler. Everything that touches it runs on this
// hart between push_off and pop_off, or in trap context.
var kern *sched.Scheduler

const (
	workerPrio  sched.Priority = 10
	counterPrio sched.Priority = 5

	// The timer wakes the worker every wakeEvery ticks.
	wakeEvery = 10

	// After this many runs the counter retires the worker.
	workerRuns = 100
)

type Counter struct {
	num    int
	wakeup int
}

var (
	count  Counter
	worker *sched.Task
)

//export KMain
func KMain() {
	klog.Printf("kmeminit... ")
	kinit()
	klog.Printf("OK\n")

	klog.Printf("schedinit... ")
	kern = sched.New(riscvSwitcher{})
	if _, err := kern.Init(sched.StackAt(get_stack0(), STACK0SIZE)); err != nil {
		klog.Panicf("schedinit: %s", err.Error())
	}
	klog.Printf("OK\n")

	worker = kcreate(workerTask, workerPrio)
	kcreate(counterTask, counterPrio)

	klog.Printf("trapinithart...  ")
	trapinithart()
	klog.Printf("OK\n")

	// The boot context is now the idle task; hand the hart to the
	// highest-priority task and only come back when nothing is ready.
	kyield()
	for {
		wfi()
	}
}

func kcreate(fn func(), prio sched.Priority) *sched.Task {
	push_off()
	defer pop_off()

	stack := kallocStack()
	t, err := kern.Create(sched.EntryOf(fn), stack, sched.Attr{Priority: prio})
	if err != nil {
		kfreeStack(stack)
		klog.Panicf("kcreate prio %d: %s", uint8(prio), err.Error())
	}
	return t
}

// retireWorker destroys the worker once it has run workerRuns times.
// worker is cleared before interrupts come back on, so tick never sees
// a control block whose page has been freed.
func retireWorker() bool {
	push_off()
	defer pop_off()

	if worker == nil || count.num < workerRuns {
		return false
	}
	stack, err := kern.Destroy(worker)
	if err != nil {
		return false
	}
	worker = nil
	kfreeStack(stack)
	return true
}

func kyield() {
	push_off()
	kern.Yield()
	pop_off()
}

func ksleep() {
	push_off()
	if err := kern.Sleep(); err != nil {
		klog.Panicf("ksleep: %s", err.Error())
	}
	pop_off()
}

func kwakeup(t *sched.Task) error {
	push_off()
	defer pop_off()
	return kern.Wakeup(t)
}

// tick runs on every timer interrupt. Interrupts are already off, so the
// push_off inside kyield only records that.
func tick() {
	if worker != nil && worker.State() == sched.Blocked && ticks%wakeEvery == 0 {
		if err := kwakeup(worker); err == nil {
			count.wakeup++
		}
	}
	kyield()
}

// started balances the push_off a task was switched in under. A new task
// reaches its entry through the trampoline, not through the pop_off that
// follows a switch.
func started() {
	intr_off()
	pop_off()
}

func workerTask() {
	started()
	for {
		count.num++
		klog.Printf("worker: run %d, wakeups %d\n", count.num, count.wakeup)
		ksleep()
	}
}

func counterTask() {
	started()
	for {
		for i := 0; i < 100000; i++ {
		}
		klog.Printf("counter: worker ran %d times\n", count.num)
		if retireWorker() {
			klog.Printf("counter: worker retired\n")
		}
		kyield()
	}
}

func main() {}
