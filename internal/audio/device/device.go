// Package device plays an audio engine on the local sound device. It is kept
// apart from package audio so hosts without sound hardware never link the driver.
package device

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/speaker"
	"github.com/tomz197/santavirus/internal/audio"
)

// bufferLength is the device buffer length.
const bufferLength = 100 * time.Millisecond

// Open starts playing e on the default sound device.
func Open(e *audio.Engine) error {
	sr := e.SampleRate()
	if err := speaker.Init(sr, sr.N(bufferLength)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(e)
	return nil
}

// Close stops playback and releases the device.
func Close() {
	speaker.Clear()
	speaker.Close()
}
