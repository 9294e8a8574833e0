package vulkanboot

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/xlab/catcher"
	"github.com/xlab/closer"
)

// Waker interrupts a blocking event wait from another goroutine.
type Waker interface {
	Wake()
}

// Supervisor keeps teardown on the goroutine that built the chain. closer
// runs its hooks on its own goroutine and exits right after them, so the hook
// only asks for a stop and waits until the owner has finished.
type Supervisor struct {
	quit chan struct{}
	done chan struct{}

	mu    sync.Mutex
	waker Waker
}

func NewSupervisor() *Supervisor {
	return &Supervisor{
		quit: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Quit receives one value when a stop is requested.
func (s *Supervisor) Quit() <-chan struct{} {
	return s.quit
}

// Attach sets the waker used by Interrupt. Attach(nil) before destroying it.
func (s *Supervisor) Attach(w Waker) {
	s.mu.Lock()
	s.waker = w
	s.mu.Unlock()
}

// Interrupt requests a stop and blocks until Run has returned. It is a no-op
// once Run is over.
func (s *Supervisor) Interrupt() {
	select {
	case <-s.done:
		return
	case s.quit <- struct{}{}:
	default:
	}
	s.mu.Lock()
	if s.waker != nil {
		s.waker.Wake()
	}
	s.mu.Unlock()
	<-s.done
}

// Run calls fn on the current goroutine. A panic in fn comes back as ErrPanic.
func (s *Supervisor) Run(fn func(quit <-chan struct{}) error) error {
	defer close(s.done)
	return Guard(func() error {
		return fn(s.quit)
	})
}

// Supervise runs fn under a Supervisor whose Interrupt is bound to closer.
func Supervise(fn func(s *Supervisor) error) error {
	s := NewSupervisor()
	closer.Bind(s.Interrupt)
	return s.Run(func(<-chan struct{}) error {
		return fn(s)
	})
}

// Guard runs fn and turns a panic inside it into an error. Deferred calls in
// fn run during unwinding, so resources it owns are still released.
func Guard(fn func() error) (err error) {
	var recovered error
	defer func() {
		if recovered != nil {
			err = errors.Mark(errors.Wrap(recovered, "panic"), ErrPanic)
		}
	}()
	defer catcher.Catch(
		catcher.RecvLog(true),
		catcher.RecvError(&recovered, true),
	)
	return fn()
}
