package frontend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chip8go/frontend"
)

func TestControllerAtMostOneSession(t *testing.T) {
	r := newRig(frontend.DriverConfig{})

	for i := 0; i < 5; i++ {
		r.ctrl.Start()
		assert.Equal(t, 1, r.loop.Pending())
		assert.True(t, r.ctrl.Running())
	}

	require.NoError(t, r.loop.RunFrame(frameAt(1)))
	assert.Equal(t, 10, r.engine.count("cycle"), "only one chain steps the engine")
	assert.Equal(t, 1, r.loop.Pending())
}

func TestControllerRestartWhileRunning(t *testing.T) {
	r := newRig(frontend.DriverConfig{})
	r.ctrl.Start()
	require.NoError(t, r.loop.RunFrame(frameAt(1)))

	r.ctrl.Start()
	require.NoError(t, r.loop.RunFrame(frameAt(2)))
	require.NoError(t, r.loop.RunFrame(frameAt(3)))

	assert.Equal(t, 30, r.engine.count("cycle"))
	assert.Equal(t, 1, r.loop.Pending())
}

func TestControllerStopIsIdempotent(t *testing.T) {
	r := newRig(frontend.DriverConfig{})
	r.ctrl.Stop()
	r.ctrl.Start()
	r.ctrl.Stop()
	r.ctrl.Stop()

	assert.False(t, r.ctrl.Running())
	assert.Zero(t, r.loop.Pending())
}
