package avfilter

import "github.com/richinsley/avgraph/frame"

const defaultVideoTimeBaseDen = 1000000

// ConfigureLinks walks inst's input links depth-first, configuring each
// one (inheriting/negotiating its properties) before returning, per spec
// §4.6. The driver tolerates cycles: a link already mid-configuration
// (StartInit) short-circuits the whole call with cyclic=true rather than
// recursing forever, while still returning a nil error — a cycle is not
// itself a configuration failure. Callers that care can inspect the
// returned bool; callers that don't (matching the spec's literal "return
// success" wording) can ignore it.
func ConfigureLinks(inst *FilterInstance) (cyclic bool, err error) {
	for _, l := range inst.Inputs {
		if l == nil {
			continue
		}
		switch l.InitState {
		case LinkInit:
			continue
		case LinkStartInit:
			return true, nil
		}

		l.InitState = LinkStartInit

		srcCyclic, err := ConfigureLinks(l.Src)
		cyclic = cyclic || srcCyclic
		if err != nil {
			return cyclic, err
		}

		srcPad := l.Src.OutputPads[l.SrcPad]
		if srcPad.ConfigProps != nil {
			if err := srcPad.ConfigProps(l); err != nil {
				return cyclic, err
			}
		} else if len(l.Src.Inputs) != 1 {
			return cyclic, newInvalidConfiguration("configure_links",
				simpleErr(l.Src.Name+": source filter without exactly one input must set config_props"))
		}

		if err := inheritLinkProps(l); err != nil {
			return cyclic, err
		}

		dstPad := inst.InputPads[l.DstPad]
		if dstPad.ConfigProps != nil {
			if err := dstPad.ConfigProps(l); err != nil {
				return cyclic, err
			}
		}

		l.InitState = LinkInit
	}
	return cyclic, nil
}

// inheritLinkProps applies the video/audio default-and-inherit rules of
// spec §4.6 once a link's source side has been configured.
func inheritLinkProps(l *Link) error {
	var inherited *Link
	if len(l.Src.Inputs) > 0 {
		inherited = l.Src.Inputs[0]
	}

	switch l.Media {
	case frame.MediaVideo:
		if l.TimeBase.IsZero() {
			if inherited != nil {
				l.TimeBase = inherited.TimeBase
			} else {
				l.TimeBase = frame.Rational{Num: 1, Den: defaultVideoTimeBaseDen}
			}
		}
		if l.SampleAspectRatio.IsZero() {
			if inherited != nil && !inherited.SampleAspectRatio.IsZero() {
				l.SampleAspectRatio = inherited.SampleAspectRatio
			} else {
				l.SampleAspectRatio = frame.Rational{Num: 1, Den: 1}
			}
		}
		if l.FrameRate.IsZero() && inherited != nil {
			l.FrameRate = inherited.FrameRate
		}
		if (l.W == 0 || l.H == 0) {
			if inherited != nil && inherited.W != 0 && inherited.H != 0 {
				l.W, l.H = inherited.W, inherited.H
			} else {
				return newInvalidConfiguration("configure_links",
					simpleErr(l.Src.Name+": source must set dimensions"))
			}
		}
	case frame.MediaAudio:
		if l.TimeBase.IsZero() {
			if inherited != nil && !inherited.TimeBase.IsZero() {
				l.TimeBase = inherited.TimeBase
			} else if l.SampleRate != 0 {
				l.TimeBase = frame.Rational{Num: 1, Den: l.SampleRate}
			}
		}
	}
	return nil
}
