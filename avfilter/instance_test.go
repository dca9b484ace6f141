package avfilter

import (
	"testing"

	"github.com/matryer/is"
	"github.com/richinsley/avgraph/frame"
)

func TestAllocCopiesPadTemplatesAndPriv(t *testing.T) {
	is := is.New(t)

	kind := &FilterKind{
		Name:       "dup",
		NewPriv:    func() interface{} { return &struct{ X int }{X: 7} },
		InputPads:  []PadDescriptor{{Name: "in", Media: frame.MediaVideo}},
		OutputPads: []PadDescriptor{{Name: "out", Media: frame.MediaVideo}},
	}

	inst, err := Alloc(kind, "a")
	is.NoErr(err)
	is.Equal(len(inst.Inputs), 1)
	is.Equal(len(inst.Outputs), 1)
	is.Equal(inst.InputPads[0].Name, "in")
	is.Equal(inst.Priv.(*struct{ X int }).X, 7)

	// Mutating the instance's pad copy must not affect the shared kind.
	inst.InputPads[0].Name = "renamed"
	is.Equal(kind.InputPads[0].Name, "in")
}

func TestAllocAppliesOptionSchemaDefaults(t *testing.T) {
	is := is.New(t)

	type privWithDefault struct {
		Flags string `opt:"flags" optdefault:"bilinear"`
		W     int    `opt:"w"`
	}
	kind := &FilterKind{
		Name:    "defaulted",
		NewPriv: func() interface{} { return &privWithDefault{} },
	}

	inst, err := Alloc(kind, "d")
	is.NoErr(err)
	p := inst.Priv.(*privWithDefault)
	is.Equal(p.Flags, "bilinear")
	is.Equal(p.W, 0)
}

func TestAllocRejectsNilKind(t *testing.T) {
	is := is.New(t)
	_, err := Alloc(nil, "a")
	is.True(err != nil)
	is.True(IsInvalidArgument(err))
}

func TestInsertPadGrowsLinkSlice(t *testing.T) {
	is := is.New(t)
	inst, err := Alloc(&FilterKind{Name: "grower"}, "g")
	is.NoErr(err)

	inst.InsertPad(true, 0, PadDescriptor{Name: "in1", Media: frame.MediaAudio})
	is.Equal(len(inst.InputPads), 1)
	is.Equal(len(inst.Inputs), 1)
	is.True(inst.Inputs[0] == nil)

	inst.InsertPad(false, 0, PadDescriptor{Name: "out1", Media: frame.MediaAudio})
	is.Equal(len(inst.OutputPads), 1)
	is.Equal(len(inst.Outputs), 1)
}

func TestInsertPadShiftsLinksAndFixesIndices(t *testing.T) {
	is := is.New(t)

	dst, err := Alloc(&FilterKind{
		Name:      "insdst",
		InputPads: []PadDescriptor{{Name: "in0", Media: frame.MediaVideo}, {Name: "in1", Media: frame.MediaVideo}},
	}, "dst")
	is.NoErr(err)

	// Two links already occupy dst's two input slots.
	l0 := &Link{Dst: dst, DstPad: 0}
	l1 := &Link{Dst: dst, DstPad: 1}
	dst.Inputs[0], dst.Inputs[1] = l0, l1

	// Insert a new pad at index 0: both existing input links shift right by
	// one, and their stored DstPad must follow.
	dst.InsertPad(true, 0, PadDescriptor{Name: "newin", Media: frame.MediaVideo})

	is.Equal(len(dst.InputPads), 3)
	is.True(dst.Inputs[0] == nil)
	is.Equal(dst.Inputs[1], l0)
	is.Equal(l0.DstPad, 1)
	is.Equal(dst.Inputs[2], l1)
	is.Equal(l1.DstPad, 2)
}

func TestFreeRunsUninitAndDetachesLinks(t *testing.T) {
	is := is.New(t)

	uninitCalled := false
	srcKind := &FilterKind{
		Name:       "freesrc",
		OutputPads: []PadDescriptor{{Name: "out", Media: frame.MediaVideo}},
	}
	dstKind := &FilterKind{
		Name:      "freedst",
		InputPads: []PadDescriptor{{Name: "in", Media: frame.MediaVideo}},
		Uninit: func(inst *FilterInstance) error {
			uninitCalled = true
			return nil
		},
	}

	src, err := Alloc(srcKind, "src")
	is.NoErr(err)
	dst, err := Alloc(dstKind, "dst")
	is.NoErr(err)

	_, err = Connect(src, 0, dst, 0)
	is.NoErr(err)

	is.NoErr(Free(dst))
	is.True(uninitCalled)
	is.True(dst.Inputs[0] == nil)
	is.True(src.Outputs[0] == nil)
}
