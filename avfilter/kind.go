package avfilter

// InitFunc performs modern single-string-argument initialization
// ("key=val:key2=val2" already parsed into Priv by the options pipeline;
// Init only needs to handle anything process_options could not, which for
// most filters is nothing).
type InitFunc func(inst *FilterInstance, args string) error

// InitDictFunc receives whatever options the shared pipeline did not
// recognize on Priv, so the filter can consume bespoke keys itself.
// Remaining unconsumed keys after this call are a process_options failure.
type InitDictFunc func(inst *FilterInstance, opts map[string]string) error

// InitOpaqueFunc takes precedence over Init/InitDict when set, handing the
// filter a caller-supplied opaque value instead of a string (e.g. a
// pre-built device handle). Used by filter kinds that are never
// constructed from a textual filter chain.
type InitOpaqueFunc func(inst *FilterInstance, opaque interface{}) error

// UninitFunc releases any resources Init acquired.
type UninitFunc func(inst *FilterInstance) error

// FilterKind is a filter's template: the shape every FilterInstance built
// from it is stamped with, plus the type-level hooks (construction,
// teardown, commands). Mirrors spec.md's AVFilter (the immutable template)
// as distinct from AVFilterContext (the live instance).
type FilterKind struct {
	Name        string
	Description string

	InputPads  []PadDescriptor
	OutputPads []PadDescriptor

	// NewPriv returns a fresh, zero-valued pointer to this kind's private
	// option struct (tagged per optschema), or nil if the kind has no
	// options. Replaces priv_size/priv_class: Go has no use for a raw
	// allocation size when a constructor can do the allocating.
	NewPriv func() interface{}

	// Shorthand names the positional option order accepted before the
	// first key=value token, per spec §4.11.
	Shorthand []string

	// LegacyOptions bypasses process_options' shorthand/dict pipeline
	// entirely and calls Init directly with the raw, unparsed argument
	// string — for filter kinds (e.g. abuffer, pan) whose argument syntax
	// predates the shared options machinery.
	LegacyOptions bool

	Init           InitFunc
	InitDict       InitDictFunc
	InitOpaque     InitOpaqueFunc
	Uninit         UninitFunc
	ProcessCommand ProcessCommandFunc
}

func (k *FilterKind) validate() error {
	for side, pads := range map[string][]PadDescriptor{"input": k.InputPads, "output": k.OutputPads} {
		for _, p := range pads {
			if p.hasLegacyDelivery() && p.hasModernDelivery() {
				return newInvalidArgument("register "+k.Name,
					simpleErr(side+" pad "+p.Name+" declares both legacy and modern delivery callbacks"))
			}
		}
	}
	return nil
}
