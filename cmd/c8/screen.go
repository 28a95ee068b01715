package main

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"c8/chip8"
)

var (
	// Window is the SDL window.
	Window *sdl.Window

	// Renderer is the SDL renderer.
	Renderer *sdl.Renderer

	// Screen is the render target the VM's display is drawn onto.
	Screen *sdl.Texture
)

// runSDL drives the VM inside an SDL window: one Step per clock tick, a
// redraw at 60 Hz, and the buzzer on the audio queue.
func runSDL() error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return err
	}
	defer sdl.Quit()

	if err := createWindow(); err != nil {
		return err
	}

	if err := initAudio(); err != nil {
		return err
	}

	// processor speed and refresh rate
	clock := time.NewTicker(VM.Speed())
	defer clock.Stop()

	video := time.NewTicker(time.Second / 60)
	defer video.Stop()

	for processEvents() {
		select {
		case <-video.C:
			redraw()
		case <-clock.C:
			frame, err := VM.Step(&Keys)
			if err != nil {
				return err
			}

			Frame = frame

			playTone(VM.BuzzerActive())
		}
	}

	return nil
}

// createWindow creates the SDL window, renderer and screen texture.
func createWindow() error {
	var err error

	Window, Renderer, err = sdl.CreateWindowAndRenderer(640, 320, sdl.WINDOW_OPENGL)
	if err != nil {
		return err
	}

	Window.SetTitle("CHIP-8")

	// render target matching the VM display
	Screen, err = Renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB888,
		sdl.TEXTUREACCESS_TARGET,
		chip8.DisplayWidth,
		chip8.DisplayHeight,
	)

	return err
}

// refreshScreen redraws the screen texture from the latest frame.
func refreshScreen() {
	if err := Renderer.SetRenderTarget(Screen); err != nil {
		panic(err)
	}

	// the background color for the screen
	Renderer.SetDrawColor(143, 145, 133, 255)
	Renderer.Clear()

	// set the pixel color
	Renderer.SetDrawColor(17, 29, 43, 255)

	if Frame != nil {
		for y := range Frame {
			for x := range Frame[y] {
				if Frame[y][x] == chip8.White {
					Renderer.DrawPoint(int32(x), int32(y))
				}
			}
		}
	}

	// restore the render target
	Renderer.SetRenderTarget(nil)
}

// redraw updates the screen texture and presents it stretched to the
// window.
func redraw() {
	refreshScreen()

	Renderer.SetDrawColor(32, 42, 53, 255)
	Renderer.Clear()

	src := sdl.Rect{W: chip8.DisplayWidth, H: chip8.DisplayHeight}
	Renderer.Copy(Screen, &src, &sdl.Rect{X: 0, Y: 0, W: 640, H: 320})

	Renderer.Present()
}
