package main

import "github.com/veandco/go-sdl2/sdl"

var audioDevice sdl.AudioDeviceID

// initAudio opens an audio device for the buzzer tone.
func initAudio() error {
	spec := &sdl.AudioSpec{
		Freq:     3000,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return err
	}

	audioDevice = dev

	// start the (silent) device immediately
	sdl.PauseAudioDevice(dev, false)

	return nil
}

// playTone keeps the audio queue topped up with a square wave while the
// buzzer is active and drains it otherwise.
func playTone(active bool) {
	if !active {
		sdl.ClearQueuedAudio(audioDevice)
		return
	}

	if sdl.GetQueuedAudioSize(audioDevice) > 2048 {
		return
	}

	buf := make([]byte, 512)
	for i := range buf {
		if i&8 != 0 {
			buf[i] = 0xC0
		} else {
			buf[i] = 0x40
		}
	}

	sdl.QueueAudio(audioDevice, buf)
}
