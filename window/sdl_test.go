package window

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func queue(events ...sdl.Event) func() sdl.Event {
	return func() sdl.Event {
		if len(events) == 0 {
			return nil
		}
		next := events[0]
		events = events[1:]
		return next
	}
}

func noError() error { return nil }

func TestDrainFailedWaitCloses(t *testing.T) {
	w := &SDL{}
	w.drain(nil, queue(), func() error { return errors.New("video subsystem gone") })
	assert.True(t, w.ShouldClose())
}

func TestDrainQuit(t *testing.T) {
	w := &SDL{}
	w.drain(&sdl.UserEvent{Type: sdl.USEREVENT}, queue(&sdl.QuitEvent{}), noError)
	assert.True(t, w.ShouldClose())
}

func TestDrainEscape(t *testing.T) {
	w := &SDL{}
	w.drain(&sdl.KeyboardEvent{Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}}, queue(), noError)
	assert.True(t, w.ShouldClose())
}

func TestDrainKeepsOpen(t *testing.T) {
	w := &SDL{}
	next := queue(
		&sdl.KeyboardEvent{Keysym: sdl.Keysym{Sym: sdl.K_SPACE}},
		&sdl.UserEvent{Type: sdl.USEREVENT},
	)
	w.drain(&sdl.UserEvent{Type: sdl.USEREVENT}, next, noError)
	assert.False(t, w.ShouldClose())
	assert.Nil(t, next())
}
