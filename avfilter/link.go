package avfilter

import (
	"github.com/richinsley/avgraph/frame"
	"github.com/richinsley/avgraph/avformat"
)

// LinkState tracks a link through the configuration driver, per spec §4.6.
type LinkState int

const (
	LinkUninit LinkState = iota
	LinkStartInit
	LinkInit
)

func (s LinkState) String() string {
	switch s {
	case LinkStartInit:
		return "start-init"
	case LinkInit:
		return "init"
	default:
		return "uninit"
	}
}

// LinkFlags are per-link behavior bits.
type LinkFlags uint32

// RequestLoop marks a link whose request_frame must keep pulling upstream
// even after a successful delivery — set by the audio framing path while a
// partial buffer is still being assembled, per spec §4.8.
const RequestLoop LinkFlags = 1 << 0

// GraphHost is the subset of Graph the core engine needs, declared here
// (not imported from package graph) so that graph imports avfilter and
// not the reverse.
type GraphHost interface {
	RemoveFilter(inst *FilterInstance)
	UpdateHeap(link *Link)
}

// BufferAllocator is the get_video_buffer/get_audio_buffer collaborator a
// link uses when the engine needs a fresh, uniquely-owned frame (framing,
// needs_writable). Declared here for the same import-cycle reason as
// GraphHost; avbuffer.DefaultAllocator implements it.
type BufferAllocator interface {
	VideoBuffer(w, h, format int) (*frame.Frame, error)
	AudioBuffer(nbSamples, channels int, planar bool, format int) (*frame.Frame, error)
}

// Link is a directed, negotiated edge between one filter instance's output
// pad and another's input pad. Field set mirrors spec §3 "Link" exactly.
type Link struct {
	Src, Dst         *FilterInstance
	SrcPad, DstPad   int
	Media            frame.MediaType
	Format           int

	// Video.
	W, H              int
	SampleAspectRatio frame.Rational
	FrameRate         frame.Rational

	// Audio.
	SampleRate    int
	ChannelsN     int
	ChannelLayout uint64

	TimeBase frame.Rational

	// Format-set holders, populated by the (out of scope) negotiation
	// collaborator and consulted/swapped by insert_filter.
	Formats         *avformat.Set
	SampleRates     *avformat.Set
	ChannelLayouts  *avformat.Set
	InSampleFormats *avformat.Set

	InitState LinkState
	Closed    bool

	FrameRequested bool
	CurrentPTS     int64

	PartialBuf     *frame.Frame
	PartialFill    int
	MinSamples     int
	MaxSamples     int
	PartialBufSize int

	Flags LinkFlags

	// AgeIndex is maintained by the GraphHost's UpdateHeap for whatever
	// age-ordering it wants to do; the core only ever writes through
	// UpdateHeap, never reads this field itself.
	AgeIndex int

	Allocator BufferAllocator

	graph GraphHost
}

// Connect creates a link between an output pad of src and an input pad of
// dst, per spec §4.4. Named Connect rather than Link to avoid colliding
// with the Link type.
func Connect(src *FilterInstance, srcPad int, dst *FilterInstance, dstPad int) (*Link, error) {
	if src == nil || dst == nil {
		return nil, newInvalidArgument("connect", simpleErr("src and dst must be non-nil"))
	}
	if srcPad < 0 || srcPad >= len(src.OutputPads) {
		return nil, newInvalidArgument("connect", simpleErr("src pad index out of range"))
	}
	if dstPad < 0 || dstPad >= len(dst.InputPads) {
		return nil, newInvalidArgument("connect", simpleErr("dst pad index out of range"))
	}
	if src.Outputs[srcPad] != nil {
		return nil, newInvalidArgument("connect", simpleErr("src pad already linked"))
	}
	if dst.Inputs[dstPad] != nil {
		return nil, newInvalidArgument("connect", simpleErr("dst pad already linked"))
	}
	srcMedia := src.OutputPads[srcPad].Media
	dstMedia := dst.InputPads[dstPad].Media
	if srcMedia != dstMedia {
		return nil, newInvalidArgument("connect",
			simpleErr("media type mismatch: "+srcMedia.String()+" -> "+dstMedia.String()))
	}

	l := &Link{
		Src: src, SrcPad: srcPad,
		Dst: dst, DstPad: dstPad,
		Media:     srcMedia,
		Format:    frame.FormatUnset,
		Allocator: src.allocator(),
	}
	src.Outputs[srcPad] = l
	dst.Inputs[dstPad] = l
	return l, nil
}

// LinkFree tears down l, detaching it from both endpoints' pad arrays.
func LinkFree(l *Link) {
	if l == nil {
		return
	}
	if l.Src != nil && l.SrcPad < len(l.Src.Outputs) && l.Src.Outputs[l.SrcPad] == l {
		l.Src.Outputs[l.SrcPad] = nil
	}
	if l.Dst != nil && l.DstPad < len(l.Dst.Inputs) && l.Dst.Inputs[l.DstPad] == l {
		l.Dst.Inputs[l.DstPad] = nil
	}
	if l.PartialBuf != nil {
		l.PartialBuf.Release()
		l.PartialBuf = nil
	}
}

// InsertFilter splices filt into the middle of link l, between l's
// existing endpoints, using filt's input pad inIdx and output pad outIdx.
// l becomes the upstream half (Src -> filt); a new link is returned for
// the downstream half (filt -> original Dst). On failure l is left
// unmodified. See spec §4.5.
func InsertFilter(l *Link, filt *FilterInstance, inIdx, outIdx int) (*Link, error) {
	if l == nil || filt == nil {
		return nil, newInvalidArgument("insert_filter", simpleErr("link and filter must be non-nil"))
	}
	origDst, origDstPad := l.Dst, l.DstPad

	// Connect's already-linked check would otherwise trip over l itself,
	// since origDst.Inputs[origDstPad] still holds it; clear the slot
	// first and restore it if Connect fails.
	origDst.Inputs[origDstPad] = nil
	downstream, err := Connect(filt, outIdx, origDst, origDstPad)
	if err != nil {
		origDst.Inputs[origDstPad] = l
		return nil, err
	}

	if inIdx < 0 || inIdx >= len(filt.InputPads) {
		LinkFree(downstream)
		origDst.Inputs[origDstPad] = l
		return nil, newInvalidArgument("insert_filter", simpleErr("filter input pad index out of range"))
	}
	if filt.Inputs[inIdx] != nil {
		LinkFree(downstream)
		origDst.Inputs[origDstPad] = l
		return nil, newInvalidArgument("insert_filter", simpleErr("filter input pad already linked"))
	}

	// Rebind l's destination to filt's input pad; origDst now reaches
	// through downstream instead.
	l.Dst, l.DstPad = filt, inIdx
	filt.Inputs[inIdx] = l

	// The established output-side format sets move to downstream, since
	// filt is now the producer feeding the original destination.
	avformat.Swap(&l.Formats, &downstream.Formats)
	avformat.Swap(&l.SampleRates, &downstream.SampleRates)
	avformat.Swap(&l.ChannelLayouts, &downstream.ChannelLayouts)

	return downstream, nil
}

func (l *Link) setClosed() {
	l.Closed = true
}
