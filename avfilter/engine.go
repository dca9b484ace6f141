package avfilter

import "github.com/richinsley/avgraph/frame"

// RequestFrame pulls on l, asking its source to produce and push one frame
// downstream via FilterFrame. See spec §4.7.
func RequestFrame(l *Link) error {
	if l.Closed {
		return newEOF("request_frame")
	}
	if l.FrameRequested {
		panic("avfilter: request_frame called while a request is already in flight on this link")
	}
	l.FrameRequested = true

	var err error
	srcPad := l.Src.OutputPads[l.SrcPad]
	if srcPad.RequestFrame != nil {
		err = srcPad.RequestFrame(l)
	} else if len(l.Src.Inputs) > 0 {
		err = RequestFrame(l.Src.Inputs[0])
	} else {
		err = newInvalidConfiguration("request_frame",
			simpleErr(l.Src.Name+": source has no request_frame and no input to pass through"))
	}

	if IsEOF(err) && l.PartialBuf != nil {
		buf := l.PartialBuf
		l.PartialBuf = nil
		buf.NbSamples = l.PartialFill
		l.PartialFill = 0
		err = deliverFramed(l, buf)
	}

	if err != nil {
		l.FrameRequested = false
		if IsEOF(err) {
			l.Closed = true
		}
		return err
	}

	if !l.FrameRequested {
		return nil
	}
	if l.Flags&RequestLoop != 0 {
		l.FrameRequested = false
		return RequestFrame(l)
	}
	l.FrameRequested = false
	return nil
}

// FilterFrame pushes f across l, format-checking it against the link's
// negotiated parameters and routing audio through the framing path when
// l enforces a sample-count window. See spec §4.7 preamble and §4.9.
func FilterFrame(l *Link, f *frame.Frame) error {
	if err := checkFrameFormat(l, f); err != nil {
		f.Release()
		return err
	}

	if l.Media == frame.MediaAudio && l.MinSamples != 0 &&
		(l.PartialBuf != nil || f.NbSamples < l.MinSamples || f.NbSamples > l.MaxSamples) {
		return framingPath(l, f)
	}
	return deliverFramed(l, f)
}

func checkFrameFormat(l *Link, f *frame.Frame) error {
	if f.Media != l.Media {
		return newInvalidArgument("filter_frame", simpleErr("frame media type does not match link"))
	}
	if l.Media == frame.MediaVideo {
		if l.Dst.InputPads[l.DstPad].AcceptsReformat {
			return nil
		}
		if f.Width != l.W || f.Height != l.H {
			return newInvalidArgument("filter_frame", simpleErr("frame dimensions do not match link"))
		}
	}
	return nil
}

// deliverFramed hands f to the destination pad's FilterFrame callback (or
// the default pass-through forward), after satisfying needs_writable and
// draining due commands.
func deliverFramed(l *Link, f *frame.Frame) error {
	if l.Closed {
		f.Release()
		return newEOF("filter_frame")
	}

	dstPad := l.Dst.InputPads[l.DstPad]
	if dstPad.NeedsWritable && !f.IsWritable() {
		fresh, err := allocLike(l, f)
		if err != nil {
			f.Release()
			return err
		}
		fresh.CopyProps(f)
		fresh.PTS = f.PTS
		frame.DeepCopyInto(fresh, f)
		f.Release()
		f = fresh
	}

	applyDueCommands(l.Dst, float64(f.PTS)*l.TimeBase.Float64())

	pts := f.PTS
	var err error
	if dstPad.FilterFrame != nil {
		err = dstPad.FilterFrame(l, f)
	} else {
		err = defaultForward(l.Dst, f)
	}

	l.FrameRequested = false
	updateLinkCurrentPTS(l, pts)
	return err
}

func allocLike(l *Link, f *frame.Frame) (*frame.Frame, error) {
	if f.Media == frame.MediaVideo {
		return l.Allocator.VideoBuffer(l.W, l.H, l.Format)
	}
	return l.Allocator.AudioBuffer(f.NbSamples, f.Channels, f.Planar, l.Format)
}

// defaultForward implements the filter_frame default when a destination
// pad declares no FilterFrame callback: forward the frame unchanged to
// the destination instance's first output link, per spec §4.9 preamble.
func defaultForward(inst *FilterInstance, f *frame.Frame) error {
	for _, out := range inst.Outputs {
		if out != nil {
			return FilterFrame(out, f)
		}
	}
	f.Release()
	return nil
}

func updateLinkCurrentPTS(l *Link, pts int64) {
	l.CurrentPTS = pts
	if l.graph != nil {
		l.graph.UpdateHeap(l)
	} else if l.Src != nil && l.Src.Graph != nil {
		l.graph = l.Src.Graph
		l.graph.UpdateHeap(l)
	}
}

// PollFrame estimates how many frames l's source can deliver without a
// pull, delegating to the source pad's PollFrame hook if present.
func PollFrame(l *Link) (int, error) {
	srcPad := l.Src.OutputPads[l.SrcPad]
	if srcPad.PollFrame == nil {
		return PollUnknown, ErrPollUnknown
	}
	return srcPad.PollFrame(l)
}
