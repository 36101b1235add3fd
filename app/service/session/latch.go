package session

import "sync"

// latch is a one-shot gate: once released it stays released.
type latch struct {
	once sync.Once
	done chan struct{}
}

func newLatch(released bool) *latch {
	l := &latch{done: make(chan struct{})}
	if released {
		l.Release()
	}

	return l
}

// Release reports whether this call performed the transition.
func (l *latch) Release() bool {
	released := false
	l.once.Do(func() {
		close(l.done)
		released = true
	})

	return released
}

func (l *latch) Done() <-chan struct{} {
	return l.done
}

func (l *latch) IsReleased() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}
