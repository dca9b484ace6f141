package filters

import (
	"encoding/binary"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/richinsley/avgraph/avfilter"
	"github.com/richinsley/avgraph/frame"
)

// SpectrumKind computes a magnitude spectrum of each audio frame's first
// channel via go-dsp's FFT and stores it on Frame.Metadata before
// forwarding the frame unchanged. Its input pad sets NeedsWritable, so
// this is the filter that exercises the needs_writable deep-copy path
// (§4.9 step 2) on real numeric work rather than a no-op.
var SpectrumKind = &avfilter.FilterKind{
	Name:    "spectrum",
	NewPriv: func() interface{} { return &struct{}{} },
	InputPads: []avfilter.PadDescriptor{{
		Name:          "default",
		Media:         frame.MediaAudio,
		NeedsWritable: true,
		FilterFrame:   spectrumFilterFrame,
	}},
	OutputPads: []avfilter.PadDescriptor{{
		Name:  "default",
		Media: frame.MediaAudio,
	}},
}

func spectrumFilterFrame(l *avfilter.Link, f *frame.Frame) error {
	step := 1
	if !f.Planar && f.Channels > 1 {
		step = f.Channels
	}
	samples := make([]float64, f.NbSamples)
	for i := 0; i < f.NbSamples; i++ {
		off := i * step * 4
		bits := binary.LittleEndian.Uint32(f.Data[0][off : off+4])
		samples[i] = float64(math.Float32frombits(bits))
	}
	spectrum := fft.FFTReal(samples)
	magnitudes := make([]float64, len(spectrum)/2)
	for i := range magnitudes {
		magnitudes[i] = cmplx.Abs(spectrum[i])
	}

	if f.Metadata == nil {
		f.Metadata = make(map[string]interface{})
	}
	f.Metadata["spectrum"] = magnitudes

	return avfilter.FilterFrame(l.Dst.Outputs[0], f)
}
