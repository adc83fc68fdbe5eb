package frontend_test

import (
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chip8go/frontend"
)

func TestLoopRunsRequestedFrameOnce(t *testing.T) {
	loop := frontend.NewLoop()
	var got []time.Time

	h := loop.RequestFrame(func(now time.Time) error {
		got = append(got, now)
		return nil
	})
	assert.NotZero(t, h)
	assert.Equal(t, 1, loop.Pending())

	require.NoError(t, loop.RunFrame(frameAt(1)))
	require.NoError(t, loop.RunFrame(frameAt(2)))

	assert.Equal(t, []time.Time{frameAt(1)}, got)
	assert.Zero(t, loop.Pending())
}

func TestLoopCancelledFrameDoesNotRun(t *testing.T) {
	loop := frontend.NewLoop()
	ran := false

	h := loop.RequestFrame(func(time.Time) error {
		ran = true
		return nil
	})
	loop.CancelFrame(h)
	loop.CancelFrame(h)
	loop.CancelFrame(0)

	require.NoError(t, loop.RunFrame(frameAt(1)))
	assert.False(t, ran)
}

func TestLoopDefersFramesRequestedDuringFrame(t *testing.T) {
	loop := frontend.NewLoop()
	runs := 0

	var tick frontend.FrameFunc
	tick = func(time.Time) error {
		runs++
		loop.RequestFrame(tick)
		return nil
	}
	loop.RequestFrame(tick)

	for i := 1; i <= 3; i++ {
		require.NoError(t, loop.RunFrame(frameAt(i)))
		assert.Equal(t, i, runs)
		assert.Equal(t, 1, loop.Pending())
	}
}

func TestLoopCancelWithinFrame(t *testing.T) {
	loop := frontend.NewLoop()
	var second frontend.Handle
	ran := false

	loop.RequestFrame(func(time.Time) error {
		loop.CancelFrame(second)
		return nil
	})
	second = loop.RequestFrame(func(time.Time) error {
		ran = true
		return nil
	})

	require.NoError(t, loop.RunFrame(frameAt(1)))
	assert.False(t, ran)
}

func TestLoopRunsPostedTasksFirst(t *testing.T) {
	loop := frontend.NewLoop()
	var order []string

	loop.RequestFrame(func(time.Time) error {
		order = append(order, "frame")
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		loop.Post(func() { order = append(order, "posted") })
	}()
	wg.Wait()

	require.NoError(t, loop.RunFrame(frameAt(1)))
	assert.Equal(t, []string{"posted", "frame"}, order)
}

func TestLoopReturnsFirstError(t *testing.T) {
	loop := frontend.NewLoop()
	first := errors.New("first")
	ranLast := false

	loop.RequestFrame(func(time.Time) error { return first })
	loop.RequestFrame(func(time.Time) error { return errors.New("second") })
	loop.RequestFrame(func(time.Time) error {
		ranLast = true
		return nil
	})

	err := loop.RunFrame(frameAt(1))
	assert.Equal(t, first, err)
	assert.True(t, ranLast)
}
