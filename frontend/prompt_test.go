package frontend_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chip8go/frontend"
)

func TestScanSelections(t *testing.T) {
	loop := frontend.NewLoop()
	var got []*frontend.File

	in := strings.NewReader("roms/pong.ch8\n\n   \n/tmp/maze.ch8\n")
	require.NoError(t, frontend.ScanSelections(in, loop, func(f *frontend.File) {
		got = append(got, f)
	}))
	assert.Empty(t, got, "selections run on the loop")

	require.NoError(t, loop.RunFrame(frameAt(1)))
	require.Len(t, got, 4)
	assert.Equal(t, "pong.ch8", got[0].Name)
	assert.Nil(t, got[1])
	assert.Nil(t, got[2])
	assert.Equal(t, "maze.ch8", got[3].Name)
}
