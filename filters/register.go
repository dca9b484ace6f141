package filters

import "github.com/richinsley/avgraph/avfilter"

// init registers every filter kind in this package into the process-global
// default registry, the way libavfilter's static filter list is populated
// by each filter's REGISTER_FILTER macro.
func init() {
	for _, kind := range []*avfilter.FilterKind{
		BufferKind,
		ABufferKind,
		BufferSinkKind,
		ABufferSinkKind,
		ScaleKind,
		FormatKind,
		NoFormatKind,
		PanKind,
		MovieKind,
		MicKind,
		SpeakerKind,
		SpectrumKind,
	} {
		if err := avfilter.DefaultRegistry.Register(kind); err != nil {
			panic(err)
		}
	}
}
