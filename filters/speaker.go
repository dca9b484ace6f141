package filters

import (
	"encoding/binary"
	"math"

	"github.com/gordonklaus/portaudio"

	"github.com/richinsley/avgraph/avfilter"
	"github.com/richinsley/avgraph/frame"
)

// speakerPriv wraps a portaudio output stream fed by a pending-sample slice;
// filter_frame writes decoded samples in, the stream's callback reads them
// out, mirroring mic's capture-callback shape in reverse.
type speakerPriv struct {
	SampleRate int `opt:"sample_rate" optdefault:"44100"`
	Channels   int `opt:"channels" optdefault:"1"`

	stream *portaudio.Stream
	pending []float32
}

// SpeakerKind plays decoded audio frames through the default output
// device: filter_frame writes samples to a portaudio stream instead of
// forwarding to an output link, exercising the framed-delivery callback on
// a real device sink.
var SpeakerKind = &avfilter.FilterKind{
	Name:    "speaker",
	NewPriv: func() interface{} { return &speakerPriv{} },
	Init:    speakerInit,
	Uninit:  speakerUninit,
	InputPads: []avfilter.PadDescriptor{{
		Name:        "default",
		Media:       frame.MediaAudio,
		FilterFrame: speakerFilterFrame,
	}},
}

func speakerInit(inst *avfilter.FilterInstance, args string) error {
	p := inst.Priv.(*speakerPriv)
	if p.SampleRate == 0 {
		p.SampleRate = 44100
	}
	if p.Channels == 0 {
		p.Channels = 1
	}

	if err := portaudio.Initialize(); err != nil {
		return &avfilter.NoMemoryError{Op: "speaker init", Err: err}
	}
	host, err := portaudio.DefaultHostApi()
	if err != nil {
		return &avfilter.InvalidConfigurationError{Op: "speaker init", Err: err}
	}
	params := portaudio.HighLatencyParameters(nil, host.DefaultOutputDevice)
	params.Output.Channels = p.Channels
	params.SampleRate = float64(p.SampleRate)

	callback := func(out []float32) {
		n := len(p.pending)
		if n > len(out) {
			n = len(out)
		}
		copy(out, p.pending[:n])
		p.pending = p.pending[n:]
		for i := n; i < len(out); i++ {
			out[i] = 0
		}
	}
	stream, err := portaudio.OpenStream(params, callback)
	if err != nil {
		return &avfilter.InvalidConfigurationError{Op: "speaker init", Err: err}
	}
	if err := stream.Start(); err != nil {
		return &avfilter.InvalidConfigurationError{Op: "speaker init", Err: err}
	}
	p.stream = stream
	return nil
}

func speakerUninit(inst *avfilter.FilterInstance) error {
	p := inst.Priv.(*speakerPriv)
	if p.stream != nil {
		_ = p.stream.Close()
	}
	return portaudio.Terminate()
}

func speakerFilterFrame(l *avfilter.Link, f *frame.Frame) error {
	p := l.Dst.Priv.(*speakerPriv)
	samples := make([]float32, f.NbSamples*f.Channels)
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(f.Data[0][i*4 : i*4+4]))
	}
	p.pending = append(p.pending, samples...)
	f.Release()
	return nil
}
