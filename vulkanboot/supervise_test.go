package vulkanboot

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingWaker struct {
	mu    sync.Mutex
	wakes int
}

func (w *countingWaker) Wake() {
	w.mu.Lock()
	w.wakes++
	w.mu.Unlock()
}

func TestGuardPassesErrorThrough(t *testing.T) {
	want := errors.New("plain failure")
	err := Guard(func() error { return want })
	assert.Equal(t, want, err)
	assert.NoError(t, Guard(func() error { return nil }))
}

func TestGuardRecoversPanic(t *testing.T) {
	released := false
	err := Guard(func() error {
		defer func() { released = true }()
		panic("swapchain exploded")
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPanic))
	assert.Contains(t, err.Error(), "swapchain exploded")
	assert.True(t, released)
}

func TestGuardRecoversErrorPanic(t *testing.T) {
	err := Guard(func() error {
		panic(errors.New("device lost"))
	})
	assert.True(t, errors.Is(err, ErrPanic))
	assert.Contains(t, err.Error(), "device lost")
}

func TestSupervisorInterruptWaitsForTeardown(t *testing.T) {
	d := newFakeDriver(goodDevice("gpu"))
	b := newBuilder(d, testConfig(true))
	win := newFakeWindow()
	win.closeAfter = 1 << 30
	b.Window = win

	s := NewSupervisor()
	waker := &countingWaker{}
	s.Attach(waker)

	interrupted := make(chan []string)
	win.onWait = func(waits int) {
		if waits == 1 {
			go func() {
				s.Interrupt()
				interrupted <- d.events
			}()
		}
	}

	require.NoError(t, s.Run(b.Run))
	events := <-interrupted
	assert.Equal(t, "destroy instance 0", events[len(events)-1])
	assert.Equal(t, 2*len(fullChain), len(events))
	assert.Equal(t, 1, waker.wakes)
}

func TestSupervisorInterruptBeforeRun(t *testing.T) {
	d := newFakeDriver(goodDevice("gpu"))
	b := newBuilder(d, testConfig(false))
	win := newFakeWindow()
	win.closeAfter = 1 << 30
	b.Window = win

	s := NewSupervisor()
	done := make(chan struct{})
	go func() {
		s.Interrupt()
		close(done)
	}()

	require.NoError(t, s.Run(b.Run))
	<-done
	assert.Equal(t, "destroy instance 0", d.events[len(d.events)-1])
}

func TestSupervisorInterruptAfterRun(t *testing.T) {
	s := NewSupervisor()
	require.NoError(t, s.Run(func(<-chan struct{}) error { return nil }))
	s.Interrupt()
	s.Interrupt()
}

func TestSupervisorRunPanics(t *testing.T) {
	s := NewSupervisor()
	err := s.Run(func(<-chan struct{}) error {
		panic("boom")
	})
	assert.True(t, errors.Is(err, ErrPanic))
	s.Interrupt()
}
