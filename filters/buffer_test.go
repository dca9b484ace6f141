package filters

import (
	"testing"

	"github.com/matryer/is"
	"github.com/richinsley/avgraph/avfilter"
	"github.com/richinsley/avgraph/frame"
)

func TestBufferToBufferSinkRoundTrip(t *testing.T) {
	is := is.New(t)

	reg := avfilter.NewRegistry()
	is.NoErr(reg.Register(BufferKind))
	is.NoErr(reg.Register(BufferSinkKind))

	src, err := avfilter.Alloc(reg.GetByName("buffer"), "src")
	is.NoErr(err)
	is.NoErr(avfilter.Init(src, "16:16:0"))

	sink, err := avfilter.Alloc(reg.GetByName("buffersink"), "sink")
	is.NoErr(err)

	_, err = avfilter.Connect(src, 0, sink, 0)
	is.NoErr(err)

	_, err = avfilter.ConfigureLinks(sink)
	is.NoErr(err)

	f := frame.NewVideoFrame(16, 16, 0)
	PushFrame(src, f)

	is.NoErr(avfilter.RequestFrame(sink.Inputs[0]))
	got, ok := PullFrame(sink)
	is.True(ok)
	is.Equal(got.Width, 16)

	CloseSource(src)
	err = avfilter.RequestFrame(sink.Inputs[0])
	is.True(avfilter.IsEOF(err))
}
