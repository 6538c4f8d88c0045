package audio

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/gopxl/beep"
)

// bytesPerFrame is one stereo frame of signed 16-bit little-endian samples.
const bytesPerFrame = 4

// PCMReader exposes a streamer as an endless signed 16-bit little-endian
// stereo byte stream, the format players such as ebiten's audio package expect.
type PCMReader struct {
	s       beep.Streamer
	samples [][2]float64
	partial []byte // Bytes of a frame not yet handed out
}

// NewPCMReader wraps s.
func NewPCMReader(s beep.Streamer) *PCMReader {
	return &PCMReader{s: s}
}

// Read fills p with PCM data. It only fails if the streamer does.
func (r *PCMReader) Read(p []byte) (int, error) {
	n := copy(p, r.partial)
	r.partial = r.partial[n:]
	p = p[n:]
	if len(p) == 0 {
		return n, nil
	}

	frames := (len(p) + bytesPerFrame - 1) / bytesPerFrame
	if cap(r.samples) < frames {
		r.samples = make([][2]float64, frames)
	}
	buf := r.samples[:frames]
	got, ok := r.s.Stream(buf)
	if !ok && got == 0 {
		if err := r.s.Err(); err != nil {
			return n, err
		}
		return n, io.EOF
	}

	var frame [bytesPerFrame]byte
	for i := 0; i < got; i++ {
		binary.LittleEndian.PutUint16(frame[0:], uint16(toInt16(buf[i][0])))
		binary.LittleEndian.PutUint16(frame[2:], uint16(toInt16(buf[i][1])))
		c := copy(p, frame[:])
		n += c
		p = p[c:]
		if c < bytesPerFrame {
			r.partial = append(r.partial[:0], frame[c:]...)
			break
		}
	}
	return n, nil
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
