package avfilter

import "github.com/richinsley/avgraph/frame"

const bytesPerSample = 4

// framingPath implements spec §4.8: an incoming audio frame that doesn't
// fit neatly into l's [MinSamples, MaxSamples] window is accumulated into
// l.PartialBuf until enough samples are on hand to emit, one or more
// frames at a time. Each emitted frame holds at least MinSamples and at
// most PartialBufSize samples; MaxSamples is not consulted here.
func framingPath(l *Link, in *frame.Frame) error {
	l.Flags |= RequestLoop

	srcOffset := 0
	for srcOffset < in.NbSamples {
		if l.PartialBuf == nil {
			buf, err := l.Allocator.AudioBuffer(l.PartialBufSize, in.Channels, in.Planar, l.Format)
			if err != nil {
				l.Dst.logf("avfilter: %s: dropping audio frame, buffer allocation failed: %v", l.Dst.Name, err)
				in.Release()
				return nil
			}
			buf.CopyProps(in)
			buf.PTS = in.PTS + int64((float64(srcOffset)/float64(in.SampleRate))/l.TimeBase.Float64())
			l.PartialBuf = buf
			l.PartialFill = 0
		}

		capacityLeft := l.PartialBufSize - l.PartialFill
		remaining := in.NbSamples - srcOffset
		n := remaining
		if capacityLeft < n {
			n = capacityLeft
		}
		copySamples(l.PartialBuf, l.PartialFill, in, srcOffset, n)
		l.PartialFill += n
		srcOffset += n

		if l.PartialFill >= l.MinSamples {
			buf := l.PartialBuf
			buf.NbSamples = l.PartialFill
			l.PartialBuf = nil
			l.PartialFill = 0
			if err := deliverFramed(l, buf); err != nil {
				in.Release()
				return err
			}
		}
	}
	in.Release()
	return nil
}

// copySamples copies n samples per channel from src (starting at srcOff)
// into dst (starting at dstOff), honoring each frame's planar/interleaved
// layout.
func copySamples(dst *frame.Frame, dstOff int, src *frame.Frame, srcOff, n int) {
	if src.Planar {
		for c := range dst.Data {
			if c >= len(src.Data) {
				break
			}
			copy(dst.Data[c][dstOff*bytesPerSample:(dstOff+n)*bytesPerSample],
				src.Data[c][srcOff*bytesPerSample:(srcOff+n)*bytesPerSample])
		}
		return
	}
	stride := dst.Channels * bytesPerSample
	copy(dst.Data[0][dstOff*stride:(dstOff+n)*stride], src.Data[0][srcOff*stride:(srcOff+n)*stride])
}
