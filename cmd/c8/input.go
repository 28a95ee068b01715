package main

import "github.com/veandco/go-sdl2/sdl"

// KeyMap maps the modern keyboard to the CHIP-8 key pad.
var KeyMap = map[sdl.Scancode]uint8{
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_V: 0xF,
}

// processEvents drains the SDL event queue into the key pad state. It
// returns false once the window is closed or escape is pressed.
func processEvents() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYUP {
				if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
					Keys[key] = false
				}
			} else if ev.Repeat == 0 {
				if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
					Keys[key] = true
				} else if ev.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					return false
				}
			}
		}
	}

	return true
}
