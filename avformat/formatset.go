// Package avformat defines the opaque format-set holders that a link
// carries between linking and configuration. The sets themselves are
// produced and consumed by the format-negotiation collaborator named in
// the spec; this package only gives that collaborator somewhere to put
// its data and a way to hand a set from one link to another when a filter
// is auto-inserted.
package avformat

// Set is an opaque, ordered collection of admissible values for one
// negotiable property of a link: pixel/sample formats, sample rates, or
// channel layouts. The core never interprets the values; it only creates,
// swaps, and releases the holder.
type Set struct {
	values []int64
}

// NewSet wraps the given admissible values in a Set.
func NewSet(values ...int64) *Set {
	return &Set{values: append([]int64(nil), values...)}
}

// Values returns the admissible values, in the order supplied to NewSet.
func (s *Set) Values() []int64 {
	if s == nil {
		return nil
	}
	return s.values
}

// Swap exchanges the contents of a and b in place. insert_filter uses this
// to hand an established output-side format set from the original link to
// the newly spliced filter's outbound link, since the new filter is now
// the producer for the original destination.
func Swap(a, b **Set) {
	*a, *b = *b, *a
}
