package avfilter

import (
	"log"

	"github.com/richinsley/avgraph/optschema"
)

// FilterInstance is a live, instantiated node in a graph: spec.md's
// AVFilterContext. Pad arrays are per-instance copies of the kind's
// template so InsertPad (used by filters that grow pads at configure time)
// never mutates a shared FilterKind.
type FilterInstance struct {
	Kind *FilterKind
	Name string
	Priv interface{}

	InputPads  []PadDescriptor
	OutputPads []PadDescriptor

	Inputs  []*Link
	Outputs []*Link

	commands *commandQueue

	Graph  GraphHost
	Logger *log.Logger

	// buf is the buffer allocator new links sourced from this instance
	// pick up; nil after Alloc, set by Graph.CreateFilter or SetAllocator
	// (caller must supply one before first use if no graph is attached).
	buf BufferAllocator
}

// Alloc instantiates kind under name, copying its pad templates and
// allocating its private option struct (if any) but not yet running any
// init hook — callers finish construction via Init/InitWithDict/
// InitWithOpaque. See spec §5.
func Alloc(kind *FilterKind, name string) (*FilterInstance, error) {
	if kind == nil {
		return nil, newInvalidArgument("alloc", simpleErr("kind must be non-nil"))
	}
	inst := &FilterInstance{
		Kind:       kind,
		Name:       name,
		InputPads:  append([]PadDescriptor(nil), kind.InputPads...),
		OutputPads: append([]PadDescriptor(nil), kind.OutputPads...),
		commands:   newCommandQueue(),
		Logger:     log.Default(),
	}
	inst.Inputs = make([]*Link, len(inst.InputPads))
	inst.Outputs = make([]*Link, len(inst.OutputPads))
	if kind.NewPriv != nil {
		inst.Priv = kind.NewPriv()
		if err := optschema.SetDefaults(inst.Priv); err != nil {
			return nil, newInvalidArgument("alloc "+name, err)
		}
	}
	return inst, nil
}

func (inst *FilterInstance) allocator() BufferAllocator {
	return inst.buf
}

// SetAllocator installs the buffer allocator this instance's outbound
// links use for framing and needs_writable copies. A Graph sets this when
// it creates an instance; tests may set it directly.
func (inst *FilterInstance) SetAllocator(a BufferAllocator) {
	inst.buf = a
}

// InsertPad inserts a new pad descriptor at index (clamped to the current
// count) in inst's input or output pad array, shifting subsequent pads
// (and their link slots) right by one. Every link that pointed at a
// shifted slot has its stored pad index incremented to match, per spec
// §4.3 — the only mechanism that keeps link-to-pad indices consistent when
// filters dynamically grow their pad set (e.g. a mixer growing one input
// per connected source).
func (inst *FilterInstance) InsertPad(isInput bool, index int, pad PadDescriptor) {
	if isInput {
		if index < 0 {
			index = 0
		}
		if index > len(inst.InputPads) {
			index = len(inst.InputPads)
		}
		inst.InputPads = append(inst.InputPads, PadDescriptor{})
		copy(inst.InputPads[index+1:], inst.InputPads[index:])
		inst.InputPads[index] = pad

		inst.Inputs = append(inst.Inputs, nil)
		copy(inst.Inputs[index+1:], inst.Inputs[index:])
		inst.Inputs[index] = nil

		for i := index + 1; i < len(inst.Inputs); i++ {
			if l := inst.Inputs[i]; l != nil {
				l.DstPad = i
			}
		}
		return
	}

	if index < 0 {
		index = 0
	}
	if index > len(inst.OutputPads) {
		index = len(inst.OutputPads)
	}
	inst.OutputPads = append(inst.OutputPads, PadDescriptor{})
	copy(inst.OutputPads[index+1:], inst.OutputPads[index:])
	inst.OutputPads[index] = pad

	inst.Outputs = append(inst.Outputs, nil)
	copy(inst.Outputs[index+1:], inst.Outputs[index:])
	inst.Outputs[index] = nil

	for i := index + 1; i < len(inst.Outputs); i++ {
		if l := inst.Outputs[i]; l != nil {
			l.SrcPad = i
		}
	}
}

// Free releases inst: drops it from the owning graph's bookkeeping first
// (so a RemoveFilter callback never observes a filter mid-teardown), then
// runs its Uninit hook, then frees every attached link. Per spec §4.12.
func Free(inst *FilterInstance) error {
	if inst == nil {
		return nil
	}
	if inst.Graph != nil {
		inst.Graph.RemoveFilter(inst)
	}
	var err error
	if inst.Kind.Uninit != nil {
		err = inst.Kind.Uninit(inst)
	}
	for _, l := range inst.Inputs {
		LinkFree(l)
	}
	for _, l := range inst.Outputs {
		LinkFree(l)
	}
	return err
}

func (inst *FilterInstance) logf(format string, args ...interface{}) {
	if inst.Logger != nil {
		inst.Logger.Printf(format, args...)
	}
}
