package graph

import (
	"testing"

	"github.com/matryer/is"
	"github.com/richinsley/avgraph/avfilter"
	"github.com/richinsley/avgraph/frame"
)

func videoSourceKind(name string, w, h int) *avfilter.FilterKind {
	return &avfilter.FilterKind{
		Name: name,
		OutputPads: []avfilter.PadDescriptor{{
			Name:  "out",
			Media: frame.MediaVideo,
			ConfigProps: func(l *avfilter.Link) error {
				l.W, l.H = w, h
				return nil
			},
			RequestFrame: func(l *avfilter.Link) error {
				return &avfilter.EOFError{Op: "test source"}
			},
		}},
	}
}

func videoSinkKind(name string) *avfilter.FilterKind {
	return &avfilter.FilterKind{
		Name: name,
		InputPads: []avfilter.PadDescriptor{{
			Name:  "in",
			Media: frame.MediaVideo,
		}},
	}
}

func TestParseChainWiresInstancesInOrder(t *testing.T) {
	is := is.New(t)

	reg := avfilter.NewRegistry()
	is.NoErr(reg.Register(videoSourceKind("src", 64, 64)))
	is.NoErr(reg.Register(videoSinkKind("sink")))

	g := &Graph{Registry: reg, Allocator: nil}
	insts, err := ParseChain(g, []ChainSpec{
		{Kind: "src"},
		{Kind: "sink"},
	})
	is.NoErr(err)
	is.Equal(len(insts), 2)
	is.Equal(insts[0].Outputs[0].Dst, insts[1])

	cyclic, err := avfilter.ConfigureLinks(insts[1])
	is.NoErr(err)
	is.True(!cyclic)
	is.Equal(insts[1].Inputs[0].W, 64)
}

func TestFlushDrainsToEOF(t *testing.T) {
	is := is.New(t)

	reg := avfilter.NewRegistry()
	is.NoErr(reg.Register(videoSourceKind("src2", 32, 32)))
	is.NoErr(reg.Register(videoSinkKind("sink2")))

	g := &Graph{Registry: reg}
	insts, err := ParseChain(g, []ChainSpec{{Kind: "src2"}, {Kind: "sink2"}})
	is.NoErr(err)

	_, err = avfilter.ConfigureLinks(insts[1])
	is.NoErr(err)

	err = Flush([]*avfilter.Link{insts[1].Inputs[0]})
	is.NoErr(err)
}
