package avfilter

import "github.com/richinsley/avgraph/frame"

// ConfigPropsFunc negotiates/inherits a link's properties once its source
// and destination are both known. See spec §4.6.
type ConfigPropsFunc func(link *Link) error

// RequestFrameFunc implements the pull side of a source pad: pull a frame
// from further upstream (or produce one directly) and deliver it via
// filter_frame. See spec §4.7.
type RequestFrameFunc func(link *Link) error

// FilterFrameFunc implements the push side of a destination pad: receive a
// frame the core has already format-checked and, if needed, framed. See
// spec §4.9.
type FilterFrameFunc func(link *Link, f *frame.Frame) error

// PollFrameFunc estimates how many frames are available without pulling
// one. Returns ErrPollUnknown's sentinel count when the pad cannot answer
// (e.g. the input isn't connected yet) — see DESIGN.md for why this
// replaces the spec's overloaded -1 return.
type PollFrameFunc func(link *Link) (int, error)

// ProcessCommandFunc lets a filter kind handle a runtime command beyond the
// built-in "ping". See spec §4.10.
type ProcessCommandFunc func(inst *FilterInstance, cmd, arg string, flags int) (string, error)

// PollUnknown is returned by a PollFrameFunc, alongside ErrPollUnknown, when
// the pad cannot estimate availability.
const PollUnknown = -1

// ErrPollUnknown is returned by PollFrame when availability can't be
// estimated — e.g. the input link isn't connected. Spec.md overloads -1 for
// this; avgraph keeps the -1 return value for familiarity but pairs it with
// a distinguishable error so callers don't have to special-case a bare
// integer.
var ErrPollUnknown = newInvalidConfiguration("poll_frame", errUnconnectedInput)

var errUnconnectedInput = simpleErr("input pad not connected")

type simpleErr string

func (e simpleErr) Error() string { return string(e) }

// PadDescriptor describes one named, typed endpoint of a filter kind. A
// FilterInstance holds its own copy (InsertPad mutates a copy, never the
// kind's template).
type PadDescriptor struct {
	Name  string
	Media frame.MediaType

	ConfigProps  ConfigPropsFunc
	RequestFrame RequestFrameFunc
	FilterFrame  FilterFrameFunc
	PollFrame    PollFrameFunc

	// NeedsWritable requires the core to hand this (destination) pad a
	// uniquely-owned, writable frame, deep-copying first if necessary.
	NeedsWritable bool

	// AcceptsReformat relaxes the video format-match assertion in
	// filter_frame for this (destination) pad, the way a scale filter
	// tolerates an input it will itself convert. Resolves the spec's
	// name == "scale" special case into a declared pad property instead
	// of a string comparison — see DESIGN.md Open Questions.
	AcceptsReformat bool

	// Legacy delivery callbacks. The registry asserts a pad never
	// declares both a legacy and a modern delivery callback for the same
	// direction (start_frame/end_frame vs. filter_frame for inputs,
	// request_frame's legacy shape is the same function on both sides).
	StartFrame FilterFrameFunc
	EndFrame   func(link *Link) error
}

func (p *PadDescriptor) hasLegacyDelivery() bool {
	return p.StartFrame != nil || p.EndFrame != nil
}

func (p *PadDescriptor) hasModernDelivery() bool {
	return p.FilterFrame != nil
}
