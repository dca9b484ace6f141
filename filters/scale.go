package filters

import (
	"github.com/richinsley/avgraph/avfilter"
	"github.com/richinsley/avgraph/frame"
)

// scalePriv is scale's option struct: width/height/flags, the same three
// spec.md's shorthand example names.
type scalePriv struct {
	W     int    `opt:"w"`
	H     int    `opt:"h"`
	Flags string `opt:"flags" optdefault:"bilinear"`
}

// ScaleKind resizes a video frame to w x h, declaring AcceptsReformat on
// its input pad so filter_frame tolerates an input whose dimensions don't
// yet match the link — scale is precisely the filter that converts them.
// This replaces the historical name == "scale" string check with a
// declared pad property (see DESIGN.md Open Questions).
var ScaleKind = &avfilter.FilterKind{
	Name:      "scale",
	Shorthand: []string{"w", "h", "flags"},
	NewPriv:   func() interface{} { return &scalePriv{} },
	InputPads: []avfilter.PadDescriptor{{
		Name:            "default",
		Media:           frame.MediaVideo,
		AcceptsReformat: true,
		FilterFrame:     scaleFilterFrame,
	}},
	OutputPads: []avfilter.PadDescriptor{{
		Name:        "default",
		Media:       frame.MediaVideo,
		ConfigProps: scaleConfigProps,
	}},
}

func scaleConfigProps(l *avfilter.Link) error {
	p := l.Src.Priv.(*scalePriv)
	if p.W != 0 {
		l.W = p.W
	}
	if p.H != 0 {
		l.H = p.H
	}
	return nil
}

// scaleFilterFrame resamples f's plane into a frame matching the output
// link's negotiated w/h using nearest-neighbor sampling — enough to
// exercise the reformat path without a general-purpose image resizer
// outside this corpus's dependency set.
func scaleFilterFrame(l *avfilter.Link, f *frame.Frame) error {
	out := l.Dst.Outputs[0]
	dstW, dstH := out.W, out.H
	if dstW == 0 || dstH == 0 {
		dstW, dstH = f.Width, f.Height
	}
	resized, err := out.Allocator.VideoBuffer(dstW, dstH, out.Format)
	if err != nil {
		f.Release()
		return err
	}
	resized.CopyProps(f)
	resized.PTS = f.PTS
	nearestResize(resized, f)
	f.Release()
	return avfilter.FilterFrame(out, resized)
}

func nearestResize(dst, src *frame.Frame) {
	if src.Width == 0 || src.Height == 0 {
		return
	}
	const bpp = 4
	srcStride := src.Linesize[0]
	dstStride := dst.Linesize[0]
	for y := 0; y < dst.Height; y++ {
		sy := y * src.Height / dst.Height
		for x := 0; x < dst.Width; x++ {
			sx := x * src.Width / dst.Width
			copy(dst.Data[0][y*dstStride+x*bpp:y*dstStride+x*bpp+bpp],
				src.Data[0][sy*srcStride+sx*bpp:sy*srcStride+sx*bpp+bpp])
		}
	}
}
