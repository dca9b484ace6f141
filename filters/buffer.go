// Package filters registers the concrete filter kinds avgraph ships with:
// buffer sources/sinks that hand external frames to and from a graph, a
// video scaler, legacy-syntax compatibility filters, and four filters
// backed by the domain's real third-party stack (ffmpeg-go, portaudio,
// go-dsp).
package filters

import (
	"strconv"
	"strings"

	"github.com/richinsley/avgraph/avfilter"
	"github.com/richinsley/avgraph/frame"
)

// bufferPriv holds a video buffer source's negotiated properties, set once
// at construction and applied during configure_links.
type bufferPriv struct {
	Width  int `opt:"width"`
	Height int `opt:"height"`
	PixFmt int `opt:"pix_fmt" optdefault:"0"`

	frames chan *frame.Frame
}

// BufferKind is the video source a caller feeds frames into from outside
// the graph — spec's minimal stand-in for a real decoder front-end, the
// same role libavfilter's "buffer" source plays.
var BufferKind = &avfilter.FilterKind{
	Name:      "buffer",
	Shorthand: []string{"width", "height", "pix_fmt"},
	NewPriv:   func() interface{} { return &bufferPriv{frames: make(chan *frame.Frame, 4)} },
	OutputPads: []avfilter.PadDescriptor{{
		Name:         "default",
		Media:        frame.MediaVideo,
		ConfigProps:  bufferConfigProps,
		RequestFrame: bufferRequestFrame,
	}},
}

func bufferConfigProps(l *avfilter.Link) error {
	p := l.Src.Priv.(*bufferPriv)
	l.W, l.H = p.Width, p.Height
	l.Format = p.PixFmt
	return nil
}

func bufferRequestFrame(l *avfilter.Link) error {
	p := l.Src.Priv.(*bufferPriv)
	f, ok := <-p.frames
	if !ok {
		return &avfilter.EOFError{Op: "buffer request_frame"}
	}
	return avfilter.FilterFrame(l, f)
}

// PushFrame feeds f into a buffer source instance from outside the graph.
func PushFrame(inst *avfilter.FilterInstance, f *frame.Frame) {
	inst.Priv.(*bufferPriv).frames <- f
}

// CloseSource signals EOF on a buffer source by closing its feed channel.
func CloseSource(inst *avfilter.FilterInstance) {
	close(inst.Priv.(*bufferPriv).frames)
}

// abufferPriv is abuffer's private state. abuffer predates the modern
// options pipeline in the corpus this is grounded on, so its kind sets
// LegacyOptions and parses its own raw argument string in Init.
type abufferPriv struct {
	SampleRate int `opt:"sample_rate"`
	Channels   int `opt:"channels"`
	Planar     bool `opt:"planar"`

	frames chan *frame.Frame
}

// ABufferKind is the audio counterpart of BufferKind.
var ABufferKind = &avfilter.FilterKind{
	Name:          "abuffer",
	LegacyOptions: true,
	NewPriv:       func() interface{} { return &abufferPriv{frames: make(chan *frame.Frame, 4)} },
	Init:          abufferInit,
	OutputPads: []avfilter.PadDescriptor{{
		Name:         "default",
		Media:        frame.MediaAudio,
		ConfigProps:  abufferConfigProps,
		RequestFrame: abufferRequestFrame,
	}},
}

// abufferInit parses abuffer's legacy raw "sample_rate:channels:planar"
// argument shape directly, bypassing process_options entirely.
func abufferInit(inst *avfilter.FilterInstance, args string) error {
	p := inst.Priv.(*abufferPriv)
	parts := strings.Split(args, ":")
	if len(parts) < 2 {
		return &avfilter.InvalidArgumentError{Op: "abuffer init", Err: errInvalidAbufferArgs}
	}
	sr, err := strconv.Atoi(parts[0])
	if err != nil {
		return &avfilter.InvalidArgumentError{Op: "abuffer init", Err: err}
	}
	ch, err := strconv.Atoi(parts[1])
	if err != nil {
		return &avfilter.InvalidArgumentError{Op: "abuffer init", Err: err}
	}
	p.SampleRate, p.Channels = sr, ch
	if len(parts) > 2 {
		p.Planar = parts[2] == "1"
	}
	return nil
}

var errInvalidAbufferArgs = strErr("abuffer requires sample_rate:channels[:planar]")

type strErr string

func (e strErr) Error() string { return string(e) }

func abufferConfigProps(l *avfilter.Link) error {
	p := l.Src.Priv.(*abufferPriv)
	l.SampleRate = p.SampleRate
	l.ChannelsN = p.Channels
	return nil
}

func abufferRequestFrame(l *avfilter.Link) error {
	p := l.Src.Priv.(*abufferPriv)
	f, ok := <-p.frames
	if !ok {
		return &avfilter.EOFError{Op: "abuffer request_frame"}
	}
	return avfilter.FilterFrame(l, f)
}

// PushAudioFrame feeds f into an abuffer source instance.
func PushAudioFrame(inst *avfilter.FilterInstance, f *frame.Frame) {
	inst.Priv.(*abufferPriv).frames <- f
}

// CloseAudioSource signals EOF on an abuffer source.
func CloseAudioSource(inst *avfilter.FilterInstance) {
	close(inst.Priv.(*abufferPriv).frames)
}
