package avfilter

import (
	"testing"

	"github.com/matryer/is"
	"github.com/richinsley/avgraph/frame"
)

func TestConfigureLinksInheritsVideoProps(t *testing.T) {
	is := is.New(t)

	src, _ := Alloc(&FilterKind{
		Name: "src",
		OutputPads: []PadDescriptor{{
			Name:  "out",
			Media: frame.MediaVideo,
			ConfigProps: func(l *Link) error {
				l.W, l.H = 320, 240
				l.SampleAspectRatio = frame.Rational{Num: 1, Den: 1}
				return nil
			},
		}},
	}, "src")

	dst, _ := Alloc(&FilterKind{
		Name:      "dst",
		InputPads: []PadDescriptor{{Name: "in", Media: frame.MediaVideo}},
	}, "dst")

	_, err := Connect(src, 0, dst, 0)
	is.NoErr(err)

	cyclic, err := ConfigureLinks(dst)
	is.NoErr(err)
	is.True(!cyclic)

	l := dst.Inputs[0]
	is.Equal(l.W, 320)
	is.Equal(l.H, 240)
	is.Equal(l.TimeBase, frame.Rational{Num: 1, Den: defaultVideoTimeBaseDen})
}

func TestConfigureLinksFailsWithoutDimensions(t *testing.T) {
	is := is.New(t)

	// The source has config_props, but it leaves W/H unset and there is no
	// input link to inherit them from.
	src, _ := Alloc(&FilterKind{
		Name: "src",
		OutputPads: []PadDescriptor{{
			Name:        "out",
			Media:       frame.MediaVideo,
			ConfigProps: func(l *Link) error { return nil },
		}},
	}, "src")
	dst, _ := Alloc(&FilterKind{
		Name:      "dst",
		InputPads: []PadDescriptor{{Name: "in", Media: frame.MediaVideo}},
	}, "dst")

	_, _ = Connect(src, 0, dst, 0)
	_, err := ConfigureLinks(dst)
	is.True(err != nil)
	is.True(IsInvalidConfiguration(err))
}

func TestConfigureLinksToleratesCycle(t *testing.T) {
	is := is.New(t)

	loopKind := &FilterKind{
		Name:      "loop",
		InputPads: []PadDescriptor{{Name: "in", Media: frame.MediaVideo}},
		OutputPads: []PadDescriptor{{
			Name:  "out",
			Media: frame.MediaVideo,
			ConfigProps: func(l *Link) error {
				l.W, l.H = 64, 64
				return nil
			},
		}},
	}

	inst1, _ := Alloc(loopKind, "inst1")
	inst2, _ := Alloc(loopKind, "inst2")

	_, err := Connect(inst1, 0, inst2, 0)
	is.NoErr(err)
	_, err = Connect(inst2, 0, inst1, 0)
	is.NoErr(err)

	cyclic, err := ConfigureLinks(inst1)
	is.NoErr(err)
	is.True(cyclic)
}
