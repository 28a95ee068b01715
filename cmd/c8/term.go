package main

import (
	"time"

	termbox "github.com/nsf/termbox-go"

	"c8/chip8"
)

// termKeyMap maps terminal keys to the CHIP-8 key pad.
var termKeyMap = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// keyHold is how long a terminal key press counts as held, since termbox
// delivers no key-up events.
const keyHold = 100 * time.Millisecond

// runTerminal drives the VM with a termbox front end, for machines without
// SDL. Escape quits.
func runTerminal() error {
	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()

	events := make(chan termbox.Event, 16)
	go func() {
		for {
			events <- termbox.PollEvent()
		}
	}()

	var expiry [16]time.Time

	clock := time.NewTicker(VM.Speed())
	defer clock.Stop()

	video := time.NewTicker(time.Second / 60)
	defer video.Stop()

	for {
		select {
		case ev := <-events:
			if ev.Type != termbox.EventKey {
				continue
			}

			if ev.Key == termbox.KeyEsc {
				return nil
			}

			if key, ok := termKeyMap[ev.Ch]; ok {
				Keys[key] = true
				expiry[key] = time.Now().Add(keyHold)
			}
		case <-video.C:
			drawTerminal()
		case <-clock.C:
			for i := range Keys {
				if Keys[i] && time.Now().After(expiry[i]) {
					Keys[i] = false
				}
			}

			frame, err := VM.Step(&Keys)
			if err != nil {
				return err
			}

			Frame = frame
		}
	}
}

// drawTerminal renders the latest frame with one cell per pixel.
func drawTerminal() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	if Frame != nil {
		for y := range Frame {
			for x := range Frame[y] {
				if Frame[y][x] == chip8.White {
					termbox.SetCell(x, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
				}
			}
		}
	}

	termbox.Flush()
}
