// ringbuf/section.go

package ringbuf

import "sync"

// State is the token returned by Section.Enter and handed back to the
// matching Exit. Its meaning belongs to the Section.
type State uintptr

// Section excludes every other mutator of a buffer between Enter and Exit.
// Implementations that can nest must restore, on Exit, exactly the state
// captured by the matching Enter so an inner pair never ends an outer one.
type Section interface {
	Enter() State
	Exit(State)
}

// Mutex is a per-buffer lock for hosted targets, where goroutines stand in
// for interrupt handlers. It does not nest.
type Mutex struct {
	mu sync.Mutex
}

func (m *Mutex) Enter() State {
	m.mu.Lock()
	return 0
}

func (m *Mutex) Exit(State) { m.mu.Unlock() }

type lockerSection struct{ l sync.Locker }

func (s lockerSection) Enter() State {
	s.l.Lock()
	return 0
}

func (s lockerSection) Exit(State) { s.l.Unlock() }

// Locker adapts l to a Section, for sharing one lock between several
// buffers.
func Locker(l sync.Locker) Section { return lockerSection{l} }

type nopSection struct{}

func (nopSection) Enter() State { return 0 }
func (nopSection) Exit(State)   {}

// Nop is a Section that excludes nothing. Use it only when producer and
// consumer never preempt each other, such as both running in the
// foreground.
var Nop Section = nopSection{}
