package sched

import "rvkernel/kernel/klog"

// RunQueue holds at most one ready or running task per priority level.
// Slot p is either empty or holds a task whose priority is p.
type RunQueue struct {
	slots [NumPriorities]*Task
	n     int
}

// Add registers t at its priority. Re-adding the task already in the
// slot is a no-op; a different occupant is a conflict, not an overwrite.
func (q *RunQueue) Add(t *Task) error {
	switch q.slots[t.prio] {
	case t:
		return nil
	case nil:
		q.slots[t.prio] = t
		q.n++
		return nil
	}
	return ErrSlotConflict
}

// Remove clears t's slot if t is what it holds.
func (q *RunQueue) Remove(t *Task) bool {
	if q.slots[t.prio] != t {
		return false
	}
	q.slots[t.prio] = nil
	q.n--
	return true
}

// At returns the task at priority p, or nil.
func (q *RunQueue) At(p Priority) *Task { return q.slots[p] }

func (q *RunQueue) Len() int { return q.n }

// Next returns the highest-priority task. The idle task keeps slot 0
// occupied, so finding nothing means the queue was corrupted.
func (q *RunQueue) Next() *Task {
	for p := NumPriorities - 1; p >= 0; p-- {
		if t := q.slots[p]; t != nil {
			return t
		}
	}
	klog.Panicf("sched: run queue empty (%d tasks registered)", q.n)
	return nil
}
