// Package frame defines the opaque media-sample carrier that flows through
// an avgraph filter graph: one video plane or one block of audio samples,
// plus the timing and format attributes a link negotiates around it.
package frame

import "sync/atomic"

// MediaType identifies whether a pad, link, or frame carries video or audio.
type MediaType int

const (
	MediaVideo MediaType = iota
	MediaAudio
)

func (m MediaType) String() string {
	if m == MediaAudio {
		return "audio"
	}
	return "video"
}

// Rational is a numerator/denominator pair, used for time bases, sample
// aspect ratios, and frame rates.
type Rational struct {
	Num, Den int
}

// Float64 returns num/den, or 0 if den is 0 (av_q2d with a guard).
func (r Rational) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// IsZero reports whether the rational is the unset zero value.
func (r Rational) IsZero() bool { return r.Num == 0 && r.Den == 0 }

// FormatUnset is the sentinel value for a not-yet-negotiated pixel or
// sample format, per spec.
const FormatUnset = -1

// refcount backs Frame.Clone so the engine can tell whether a frame is
// uniquely owned before handing it to a pad that needs_writable.
type refcount struct{ n int32 }

// Frame is a single video plane or block of audio samples together with
// the attributes a link negotiates. Frames are created owned (refcount 1);
// Clone shares the underlying sample/plane data and bumps the refcount so
// multiple downstream links can hold the same data until one of them needs
// a private, writable copy.
type Frame struct {
	Media MediaType
	// Format is a pixel format or sample format identifier; FormatUnset
	// until format negotiation (out of scope here) assigns one.
	Format   int
	PTS      int64
	TimeBase Rational

	// Video-only.
	Width, Height     int
	SampleAspectRatio Rational

	// Audio-only.
	SampleRate    int
	Channels      int
	ChannelLayout uint64
	NbSamples     int
	Planar        bool

	// Data holds the sample payload: one packed plane for video, or one
	// slice per channel for planar audio (a single interleaved slice
	// otherwise). Consumers must not mutate Data unless IsWritable().
	Data     [][]byte
	Linesize []int

	// Metadata carries collaborator-attached side data (e.g. a computed
	// spectrum) that rides along with the frame but isn't part of the
	// negotiated link parameters.
	Metadata map[string]interface{}

	ref *refcount
}

// NewVideoFrame allocates an owned video frame with a single packed RGBA
// plane sized for w x h.
func NewVideoFrame(w, h, format int) *Frame {
	stride := w * 4
	return &Frame{
		Media:             MediaVideo,
		Format:            format,
		Width:             w,
		Height:            h,
		SampleAspectRatio: Rational{1, 1},
		Data:              [][]byte{make([]byte, stride*h)},
		Linesize:          []int{stride},
		ref:               &refcount{n: 1},
	}
}

// NewAudioFrame allocates an owned audio frame of nbSamples samples per
// channel, 4 bytes/sample (float32), planar or interleaved.
func NewAudioFrame(nbSamples, channels int, planar bool, format int) *Frame {
	f := &Frame{
		Media:     MediaAudio,
		Format:    format,
		NbSamples: nbSamples,
		Channels:  channels,
		Planar:    planar,
		ref:       &refcount{n: 1},
	}
	if planar {
		f.Data = make([][]byte, channels)
		f.Linesize = make([]int, channels)
		for c := 0; c < channels; c++ {
			f.Data[c] = make([]byte, nbSamples*4)
			f.Linesize[c] = nbSamples * 4
		}
	} else {
		f.Data = [][]byte{make([]byte, nbSamples*channels*4)}
		f.Linesize = []int{nbSamples * channels * 4}
	}
	return f
}

// Clone returns a shallow copy sharing the same backing sample/plane data
// and bumps the shared refcount, mirroring av_frame_ref. The copy shares
// the original's Metadata map by reference (collaborators treat it as
// read-mostly).
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}
	atomic.AddInt32(&f.ref.n, 1)
	clone := *f
	return &clone
}

// IsWritable reports whether this frame is the sole owner of its backing
// data, i.e. no Clone of it is outstanding.
func (f *Frame) IsWritable() bool {
	if f == nil || f.ref == nil {
		return true
	}
	return atomic.LoadInt32(&f.ref.n) == 1
}

// Release drops this handle's share of the backing data. It is safe to
// call on a nil frame.
func (f *Frame) Release() {
	if f == nil || f.ref == nil {
		return
	}
	atomic.AddInt32(&f.ref.n, -1)
}

// CopyProps copies timing/format attributes (but not sample data) from src
// onto f, as the framing and framed-delivery paths do when they allocate a
// fresh buffer for a partial or writable frame.
func (f *Frame) CopyProps(src *Frame) {
	f.Format = src.Format
	f.TimeBase = src.TimeBase
	f.SampleAspectRatio = src.SampleAspectRatio
	f.SampleRate = src.SampleRate
	f.Channels = src.Channels
	f.ChannelLayout = src.ChannelLayout
	if src.Metadata != nil {
		f.Metadata = make(map[string]interface{}, len(src.Metadata))
		for k, v := range src.Metadata {
			f.Metadata[k] = v
		}
	}
}

// DeepCopyInto copies dst's capacity worth of samples/planes from src,
// used by the needs_writable path (§4.9 step 2) once a fresh buffer has
// been allocated by the avbuffer collaborator.
func DeepCopyInto(dst, src *Frame) {
	n := len(dst.Data)
	if len(src.Data) < n {
		n = len(src.Data)
	}
	for i := 0; i < n; i++ {
		copy(dst.Data[i], src.Data[i])
	}
}
