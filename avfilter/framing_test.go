package avfilter

import (
	"testing"

	"github.com/matryer/is"
	"github.com/richinsley/avgraph/avbuffer"
	"github.com/richinsley/avgraph/frame"
)

func TestFramingAccumulatesUntilMinSamples(t *testing.T) {
	is := is.New(t)

	var delivered []*frame.Frame
	src, _ := Alloc(&FilterKind{
		Name:       "asrc",
		OutputPads: []PadDescriptor{{Name: "out", Media: frame.MediaAudio}},
	}, "asrc")
	dst, _ := Alloc(&FilterKind{
		Name: "adst",
		InputPads: []PadDescriptor{{
			Name:  "in",
			Media: frame.MediaAudio,
			FilterFrame: func(l *Link, f *frame.Frame) error {
				delivered = append(delivered, f)
				return nil
			},
		}},
	}, "adst")

	l, err := Connect(src, 0, dst, 0)
	is.NoErr(err)
	l.Media = frame.MediaAudio
	l.SampleRate = 48000
	l.ChannelsN = 1
	l.TimeBase = frame.Rational{Num: 1, Den: 48000}
	l.MinSamples = 1024
	l.MaxSamples = 4096
	l.PartialBufSize = 1024
	l.Allocator = avbuffer.DefaultAllocator{}

	small := frame.NewAudioFrame(256, 1, false, 0)
	small.SampleRate = 48000

	is.NoErr(FilterFrame(l, small))
	is.Equal(len(delivered), 0) // not enough samples yet
	is.Equal(l.PartialFill, 256)

	for i := 0; i < 3; i++ {
		chunk := frame.NewAudioFrame(256, 1, false, 0)
		chunk.SampleRate = 48000
		is.NoErr(FilterFrame(l, chunk))
	}

	is.Equal(len(delivered), 1)
	is.Equal(delivered[0].NbSamples, 1024)
	is.Equal(l.PartialFill, 0)
}

func TestDeliverFramedCopiesForNeedsWritable(t *testing.T) {
	is := is.New(t)

	var got *frame.Frame
	src, _ := Alloc(&FilterKind{
		Name:       "vsrc",
		OutputPads: []PadDescriptor{{Name: "out", Media: frame.MediaVideo}},
	}, "vsrc")
	dst, _ := Alloc(&FilterKind{
		Name: "vdst",
		InputPads: []PadDescriptor{{
			Name:          "in",
			Media:         frame.MediaVideo,
			NeedsWritable: true,
			FilterFrame: func(l *Link, f *frame.Frame) error {
				got = f
				return nil
			},
		}},
	}, "vdst")

	l, err := Connect(src, 0, dst, 0)
	is.NoErr(err)
	l.W, l.H = 4, 4
	l.Allocator = avbuffer.DefaultAllocator{}

	f := frame.NewVideoFrame(4, 4, 0)
	shared := f.Clone()
	is.True(!f.IsWritable())

	is.NoErr(FilterFrame(l, f))
	is.True(got != shared)
	shared.Release()
}
