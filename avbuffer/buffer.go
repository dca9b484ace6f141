// Package avbuffer provides the default frame buffer allocation
// collaborator (get_video_buffer / get_audio_buffer in spec terms). The
// core avfilter engine depends only on the small Allocator interface it
// declares itself; this package's DefaultAllocator is the plain-memory
// implementation a graph uses when no GPU- or device-backed allocator is
// supplied, in the same spirit as the teacher's SharedAudioBuffer: a flat
// byte-backed buffer with no reference to a rendering surface.
package avbuffer

import "github.com/richinsley/avgraph/frame"

// DefaultAllocator allocates frames from plain Go memory.
type DefaultAllocator struct{}

// VideoBuffer returns a fresh, uniquely-owned video frame sized w x h.
func (DefaultAllocator) VideoBuffer(w, h, format int) (*frame.Frame, error) {
	return frame.NewVideoFrame(w, h, format), nil
}

// AudioBuffer returns a fresh, uniquely-owned audio frame of nbSamples
// samples per channel.
func (DefaultAllocator) AudioBuffer(nbSamples, channels int, planar bool, format int) (*frame.Frame, error) {
	return frame.NewAudioFrame(nbSamples, channels, planar, format), nil
}
