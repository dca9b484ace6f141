package filters

import (
	"github.com/richinsley/avgraph/avfilter"
	"github.com/richinsley/avgraph/frame"
)

// sinkPriv buffers delivered frames for a caller to drain with PullFrame.
type sinkPriv struct {
	out chan *frame.Frame
}

// BufferSinkKind is the video sink a caller reads decoded frames from
// after they've passed through a graph.
var BufferSinkKind = &avfilter.FilterKind{
	Name:    "buffersink",
	NewPriv: func() interface{} { return &sinkPriv{out: make(chan *frame.Frame, 4)} },
	InputPads: []avfilter.PadDescriptor{{
		Name:        "default",
		Media:       frame.MediaVideo,
		FilterFrame: sinkFilterFrame,
	}},
}

// ABufferSinkKind is the audio counterpart of BufferSinkKind.
var ABufferSinkKind = &avfilter.FilterKind{
	Name:    "abuffersink",
	NewPriv: func() interface{} { return &sinkPriv{out: make(chan *frame.Frame, 4)} },
	InputPads: []avfilter.PadDescriptor{{
		Name:        "default",
		Media:       frame.MediaAudio,
		FilterFrame: sinkFilterFrame,
	}},
}

func sinkFilterFrame(l *avfilter.Link, f *frame.Frame) error {
	l.Dst.Priv.(*sinkPriv).out <- f
	return nil
}

// PullFrame blocks until a sink instance has a frame available (fed to it
// via a preceding request_frame on its input link) and returns it, or
// returns ok=false once the sink's channel has been drained and closed.
func PullFrame(inst *avfilter.FilterInstance) (*frame.Frame, bool) {
	f, ok := <-inst.Priv.(*sinkPriv).out
	return f, ok
}

// CloseSink closes a sink instance's delivery channel, typically once its
// single input link has returned EOF.
func CloseSink(inst *avfilter.FilterInstance) {
	close(inst.Priv.(*sinkPriv).out)
}
