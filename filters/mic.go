package filters

import (
	"encoding/binary"
	"math"

	"github.com/gordonklaus/portaudio"

	"github.com/richinsley/avgraph/avfilter"
	"github.com/richinsley/avgraph/frame"
)

// micPriv wraps a portaudio input stream, adapted from the teacher's
// Microphone: a callback copies each captured chunk and delivers it
// non-blocking so a slow consumer drops frames instead of stalling the
// audio thread.
type micPriv struct {
	SampleRate int `opt:"sample_rate" optdefault:"44100"`
	Channels   int `opt:"channels" optdefault:"1"`

	stream *portaudio.Stream
	chunks chan []float32
}

// MicKind is a live microphone capture source: request_frame pulls one
// captured chunk per call instead of the pass-through default, exercising
// the pad-level RequestFrame callback the way a real device source must.
var MicKind = &avfilter.FilterKind{
	Name:    "mic",
	NewPriv: func() interface{} { return &micPriv{chunks: make(chan []float32, 16)} },
	Init:    micInit,
	Uninit:  micUninit,
	OutputPads: []avfilter.PadDescriptor{{
		Name:         "default",
		Media:        frame.MediaAudio,
		ConfigProps:  micConfigProps,
		RequestFrame: micRequestFrame,
	}},
}

func micInit(inst *avfilter.FilterInstance, args string) error {
	p := inst.Priv.(*micPriv)
	if p.SampleRate == 0 {
		p.SampleRate = 44100
	}
	if p.Channels == 0 {
		p.Channels = 1
	}

	if err := portaudio.Initialize(); err != nil {
		return &avfilter.NoMemoryError{Op: "mic init", Err: err}
	}
	host, err := portaudio.DefaultHostApi()
	if err != nil {
		return &avfilter.InvalidConfigurationError{Op: "mic init", Err: err}
	}
	params := portaudio.HighLatencyParameters(host.DefaultInputDevice, nil)
	params.Input.Channels = p.Channels
	params.SampleRate = float64(p.SampleRate)

	callback := func(in []float32) {
		cp := make([]float32, len(in))
		copy(cp, in)
		select {
		case p.chunks <- cp:
		default:
			inst.Logger.Printf("avgraph: mic: dropping audio chunk, consumer too slow")
		}
	}
	stream, err := portaudio.OpenStream(params, callback)
	if err != nil {
		return &avfilter.InvalidConfigurationError{Op: "mic init", Err: err}
	}
	if err := stream.Start(); err != nil {
		return &avfilter.InvalidConfigurationError{Op: "mic init", Err: err}
	}
	p.stream = stream
	return nil
}

func micUninit(inst *avfilter.FilterInstance) error {
	p := inst.Priv.(*micPriv)
	if p.stream != nil {
		_ = p.stream.Close()
	}
	return portaudio.Terminate()
}

func micConfigProps(l *avfilter.Link) error {
	p := l.Src.Priv.(*micPriv)
	l.SampleRate = p.SampleRate
	l.ChannelsN = p.Channels
	return nil
}

func micRequestFrame(l *avfilter.Link) error {
	p := l.Src.Priv.(*micPriv)
	chunk, ok := <-p.chunks
	if !ok {
		return &avfilter.EOFError{Op: "mic request_frame"}
	}
	f := frame.NewAudioFrame(len(chunk)/p.Channels, p.Channels, false, 0)
	f.SampleRate = p.SampleRate
	for i, s := range chunk {
		binary.LittleEndian.PutUint32(f.Data[0][i*4:i*4+4], math.Float32bits(s))
	}
	return avfilter.FilterFrame(l, f)
}
