package filters

import (
	"strconv"
	"strings"

	"github.com/richinsley/avgraph/avfilter"
	"github.com/richinsley/avgraph/frame"
)

// formatPriv holds format/noformat's accepted pixel format list, in the
// "fmt1|fmt2|fmt3" syntax the legacy rewrite in avfilter/options.go
// produces from the filter's pre-options-pipeline ':'-joined argument.
type formatPriv struct {
	Formats string `opt:"pix_fmts"`

	list []string
}

// FormatKind constrains a video link to one of a list of pixel formats,
// given as numeric format identifiers, demonstrating the ':' -> '|'
// legacy-argument rewrite done by colonToPipe in avfilter/options.go.
var FormatKind = &avfilter.FilterKind{
	Name:      "format",
	Shorthand: []string{"pix_fmts"},
	NewPriv:   func() interface{} { return &formatPriv{} },
	Init:      formatInit,
	InputPads: []avfilter.PadDescriptor{{
		Name:        "default",
		Media:       frame.MediaVideo,
		FilterFrame: formatFilterFrame,
	}},
	OutputPads: []avfilter.PadDescriptor{{
		Name:  "default",
		Media: frame.MediaVideo,
	}},
}

// NoFormatKind is format's complement: reject any format in the list
// instead of requiring one from it. Shares format's legacy rewrite rules.
var NoFormatKind = &avfilter.FilterKind{
	Name:      "noformat",
	Shorthand: []string{"pix_fmts"},
	NewPriv:   func() interface{} { return &formatPriv{} },
	Init:      formatInit,
	InputPads: []avfilter.PadDescriptor{{
		Name:        "default",
		Media:       frame.MediaVideo,
		FilterFrame: noFormatFilterFrame,
	}},
	OutputPads: []avfilter.PadDescriptor{{
		Name:  "default",
		Media: frame.MediaVideo,
	}},
}

func formatInit(inst *avfilter.FilterInstance, args string) error {
	p := inst.Priv.(*formatPriv)
	p.Formats = args
	p.list = strings.Split(args, "|")
	return nil
}

func formatFilterFrame(l *avfilter.Link, f *frame.Frame) error {
	p := l.Dst.Priv.(*formatPriv)
	if !containsFormat(p.list, f.Format) {
		f.Release()
		return &avfilter.InvalidArgumentError{Op: "format filter_frame", Err: errFormatNotAccepted}
	}
	return avfilter.FilterFrame(l.Dst.Outputs[0], f)
}

func noFormatFilterFrame(l *avfilter.Link, f *frame.Frame) error {
	p := l.Dst.Priv.(*formatPriv)
	if containsFormat(p.list, f.Format) {
		f.Release()
		return &avfilter.InvalidArgumentError{Op: "noformat filter_frame", Err: errFormatNotAccepted}
	}
	return avfilter.FilterFrame(l.Dst.Outputs[0], f)
}

func containsFormat(list []string, format int) bool {
	want := strconv.Itoa(format)
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

var errFormatNotAccepted = strErr("frame format not in accepted list")
