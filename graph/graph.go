// Package graph provides the owning Graph object: filter instance
// bookkeeping, removal, and the age-ordered heap update hook avfilter
// calls after every delivered frame. It is deliberately not a scheduler —
// spec.md calls that out of scope — just the bookkeeping collaborator the
// core engine needs (avfilter.GraphHost) without importing graph itself.
package graph

import (
	"container/heap"
	"log"

	"github.com/richinsley/avgraph/avbuffer"
	"github.com/richinsley/avgraph/avfilter"
)

// Graph owns a set of filter instances and the links between them.
type Graph struct {
	Registry  *avfilter.Registry
	Allocator avfilter.BufferAllocator
	Logger    *log.Logger

	instances []*avfilter.FilterInstance
	ages      ageHeap
}

// New returns an empty Graph using the default registry and a plain-memory
// buffer allocator, matching the teacher's habit of giving every
// constructor a zero-configuration default.
func New() *Graph {
	return &Graph{
		Registry:  avfilter.DefaultRegistry,
		Allocator: avbuffer.DefaultAllocator{},
		Logger:    log.Default(),
	}
}

// CreateFilter looks up kind by name in the graph's registry, allocates an
// instance, and registers it with the graph.
func (g *Graph) CreateFilter(kindName, instName string) (*avfilter.FilterInstance, error) {
	kind := g.Registry.GetByName(kindName)
	if kind == nil {
		return nil, &unknownKindError{kindName}
	}
	inst, err := avfilter.Alloc(kind, instName)
	if err != nil {
		return nil, err
	}
	inst.Graph = g
	inst.Logger = g.Logger
	inst.SetAllocator(g.Allocator)
	g.instances = append(g.instances, inst)
	return inst, nil
}

// RemoveFilter drops inst from the graph's bookkeeping. Implements
// avfilter.GraphHost.
func (g *Graph) RemoveFilter(inst *avfilter.FilterInstance) {
	for i, existing := range g.instances {
		if existing == inst {
			g.instances = append(g.instances[:i], g.instances[i+1:]...)
			return
		}
	}
}

// UpdateHeap records link's latest delivery so Oldest can report which
// link is furthest behind in PTS terms. This is bookkeeping, not a
// scheduler: nothing in this package decides which link to service next.
// Implements avfilter.GraphHost.
func (g *Graph) UpdateHeap(link *avfilter.Link) {
	g.ages.upsert(link)
	heap.Init(&g.ages)
}

// Oldest returns the link with the lowest recorded CurrentPTS, or nil if
// no link has delivered a frame yet.
func (g *Graph) Oldest() *avfilter.Link {
	if len(g.ages) == 0 {
		return nil
	}
	return g.ages[0].link
}

// Instances returns the graph's filter instances in creation order.
func (g *Graph) Instances() []*avfilter.FilterInstance {
	return append([]*avfilter.FilterInstance(nil), g.instances...)
}

type unknownKindError struct{ name string }

func (e *unknownKindError) Error() string { return "graph: unknown filter kind: " + e.name }
