package sched

// Error is a scheduler failure reported to the caller. It is a plain
// value so reporting one never allocates.
type Error uint8

const (
	ErrInvalidStack Error = iota + 1
	ErrInvalidEntry
	ErrSlotConflict
	ErrDestroyRunningTask
	ErrIdleTask
	ErrNotBlocked
	ErrDestroyed
)

func (e Error) Error() string {
	switch e {
	case ErrInvalidStack:
		return "sched: invalid stack"
	case ErrInvalidEntry:
		return "sched: invalid entry"
	case ErrSlotConflict:
		return "sched: priority slot occupied"
	case ErrDestroyRunningTask:
		return "sched: destroy running task"
	case ErrIdleTask:
		return "sched: operation not allowed on idle task"
	case ErrNotBlocked:
		return "sched: task not blocked"
	case ErrDestroyed:
		return "sched: task already destroyed"
	}
	return "sched: unknown error"
}
