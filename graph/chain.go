package graph

import (
	"strings"

	"github.com/richinsley/avgraph/avfilter"
)

// ChainSpec names one link in a filter chain: the filter kind and its
// textual init arguments (process_options syntax), e.g.
// {"scale", "320:240"}.
type ChainSpec struct {
	Kind string
	Args string
	Name string
}

// ParseChain wires a linear chain of filter instances by name, the way
// ffgo's linkFilterChain wires a "buffer,scale,format,buffersink"-style
// string onto real libavfilter contexts: create each instance, init it
// with its args, and Connect each one's first output to the next's first
// input. This is a convenience built entirely from avfilter.Alloc/Init/
// Connect — it adds no new core semantics.
func ParseChain(g *Graph, specs []ChainSpec) ([]*avfilter.FilterInstance, error) {
	insts := make([]*avfilter.FilterInstance, 0, len(specs))
	for i, spec := range specs {
		name := spec.Name
		if name == "" {
			name = spec.Kind
		}
		inst, err := g.CreateFilter(spec.Kind, name)
		if err != nil {
			return nil, err
		}
		if err := avfilter.Init(inst, spec.Args); err != nil {
			return nil, err
		}
		insts = append(insts, inst)
		if i > 0 {
			prev := insts[i-1]
			if _, err := avfilter.Connect(prev, 0, inst, 0); err != nil {
				return nil, err
			}
		}
	}
	return insts, nil
}

// ParseChainString is a thin convenience over ParseChain accepting the
// textual "name=args,name=args" chain syntax ffgo's filter string uses.
func ParseChainString(g *Graph, chain string) ([]*avfilter.FilterInstance, error) {
	parts := strings.Split(chain, ",")
	specs := make([]ChainSpec, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kind, args, _ := strings.Cut(p, "=")
		specs = append(specs, ChainSpec{Kind: kind, Args: args})
	}
	return ParseChain(g, specs)
}

// Flush drains every sink link reachable by repeatedly calling
// request_frame until each returns EOF, mirroring ffgo.FilterGraph.Flush's
// drain-to-EOF idiom. sinks are typically a graph's buffersink/abuffersink
// instances' single input link.
func Flush(sinks []*avfilter.Link) error {
	for _, l := range sinks {
		for {
			err := avfilter.RequestFrame(l)
			if err == nil {
				continue
			}
			if avfilter.IsEOF(err) {
				break
			}
			return err
		}
	}
	return nil
}
