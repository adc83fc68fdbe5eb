package main

import (
	"sort"

	"github.com/faiface/pixel/pixelgl"

	"chip8go/frontend"
)

// Keypad layouts in keypad order: entry i is the button bound to key i. The
// physical arrangement is the usual 4x4 block
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
var layouts = map[string][frontend.KeyCount]pixelgl.Button{
	"qwerty": {
		pixelgl.KeyX, pixelgl.Key1, pixelgl.Key2, pixelgl.Key3,
		pixelgl.KeyQ, pixelgl.KeyW, pixelgl.KeyE, pixelgl.KeyA,
		pixelgl.KeyS, pixelgl.KeyD, pixelgl.KeyZ, pixelgl.KeyC,
		pixelgl.Key4, pixelgl.KeyR, pixelgl.KeyF, pixelgl.KeyV,
	},
	"colemak": {
		pixelgl.KeyC, pixelgl.Key1, pixelgl.Key2, pixelgl.Key3,
		pixelgl.KeyQ, pixelgl.KeyW, pixelgl.KeyF, pixelgl.KeyA,
		pixelgl.KeyR, pixelgl.KeyS, pixelgl.KeyX, pixelgl.KeyD,
		pixelgl.Key4, pixelgl.KeyP, pixelgl.KeyT, pixelgl.KeyV,
	},
}

func layoutNames() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
