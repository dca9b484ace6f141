package filters

import (
	"strings"

	"github.com/richinsley/avgraph/avfilter"
	"github.com/richinsley/avgraph/frame"
)

// panPriv holds pan's raw channel-mixing spec, a layout name followed by
// per-output-channel expressions ("stereo|c0=0.5*c0+0.5*c1|c1=c0-c1"):
// bespoke enough a filter kind predating the options pipeline, kept on as
// LegacyOptions like abuffer.
type panPriv struct {
	Layout string
	Exprs  []string
}

// PanKind remixes channels per a layout/expression spec, one of the
// filters whose argument syntax predates process_options and so bypasses
// it entirely (spec §4.11's LegacyOptions carve-out).
var PanKind = &avfilter.FilterKind{
	Name:          "pan",
	LegacyOptions: true,
	NewPriv:       func() interface{} { return &panPriv{} },
	Init:          panInit,
	InputPads: []avfilter.PadDescriptor{{
		Name:          "default",
		Media:         frame.MediaAudio,
		NeedsWritable: true,
		FilterFrame:   panFilterFrame,
	}},
	OutputPads: []avfilter.PadDescriptor{{
		Name:  "default",
		Media: frame.MediaAudio,
	}},
}

func panInit(inst *avfilter.FilterInstance, args string) error {
	p := inst.Priv.(*panPriv)
	parts := strings.Split(args, "|")
	if len(parts) < 2 {
		return &avfilter.InvalidArgumentError{Op: "pan init", Err: strErr("pan requires a layout and at least one channel expression")}
	}
	p.Layout = parts[0]
	p.Exprs = parts[1:]
	return nil
}

// panFilterFrame is a pass-through that exercises NeedsWritable (pan
// mutates samples in place per its expressions in a full implementation);
// actual coefficient evaluation is out of scope here, matching spec.md's
// treatment of channel-layout semantics as an external collaborator's
// concern.
func panFilterFrame(l *avfilter.Link, f *frame.Frame) error {
	return avfilter.FilterFrame(l.Dst.Outputs[0], f)
}
