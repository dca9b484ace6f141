package avfilter

import (
	"strings"

	"github.com/richinsley/avgraph/optschema"
)

// Init runs the full construction pipeline for inst: shorthand/dict option
// parsing (unless the kind opts out via LegacyOptions), then init dispatch
// in InitOpaque -> Init -> InitDict priority order, per spec §4.11.
func Init(inst *FilterInstance, args string) error {
	if inst.Kind.LegacyOptions {
		if inst.Kind.Init == nil {
			return nil
		}
		return inst.Kind.Init(inst, args)
	}

	rewritten := legacyRewrite(inst.Kind.Name, args)
	dict, err := processOptions(inst, rewritten)
	if err != nil {
		return err
	}
	return dispatchInit(inst, rewritten, dict)
}

// InitWithOpaque runs construction via the kind's InitOpaque hook, bypassing
// textual option parsing entirely.
func InitWithOpaque(inst *FilterInstance, opaque interface{}) error {
	if inst.Kind.InitOpaque == nil {
		return newOperationNotSupported("init", simpleErr(inst.Kind.Name+" has no opaque constructor"))
	}
	return inst.Kind.InitOpaque(inst, opaque)
}

// InitWithDict runs construction from a pre-parsed option map rather than
// a textual argument string: recognized keys are applied to Priv directly,
// whatever remains is handed to the kind's InitDict hook, and anything
// still unconsumed after that is an option-not-found failure.
func InitWithDict(inst *FilterInstance, opts map[string]string) error {
	working := make(map[string]string, len(opts))
	for k, v := range opts {
		working[k] = v
	}
	if inst.Priv != nil {
		if err := optschema.SetDict(inst.Priv, working); err != nil {
			return err
		}
	}
	return dispatchInit(inst, "", working)
}

func dispatchInit(inst *FilterInstance, args string, dict map[string]string) error {
	switch {
	case inst.Kind.InitOpaque != nil:
		return inst.Kind.InitOpaque(inst, dict)
	case inst.Kind.Init != nil:
		if err := inst.Kind.Init(inst, args); err != nil {
			return err
		}
	case inst.Kind.InitDict != nil:
		if err := inst.Kind.InitDict(inst, dict); err != nil {
			return err
		}
	}
	if len(dict) > 0 && inst.Kind.InitDict != nil && inst.Kind.Init != nil {
		if err := inst.Kind.InitDict(inst, dict); err != nil {
			return err
		}
	}
	for k := range dict {
		return newOptionNotFound("init "+inst.Kind.Name, simpleErr("no such option: "+k))
	}
	return nil
}

// processOptions parses args (spec §4.11's "key=val:key2=val2" syntax,
// with positional shorthand before the first key=value token) against
// inst's shorthand list, applying shorthand-or-named tokens to Priv as it
// goes and returning whatever it could not resolve onto Priv (the rest is
// the filter kind's problem via InitDict).
func processOptions(inst *FilterInstance, args string) (map[string]string, error) {
	dict := make(map[string]string)
	if args == "" {
		return dict, nil
	}

	tokens := splitTopLevel(args, ':')
	shorthand := inst.Kind.Shorthand
	seenNamed := false
	posIdx := 0

	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		key, val, isNamed := splitKeyValue(tok)
		if isNamed {
			seenNamed = true
			dict[key] = val
			continue
		}
		if seenNamed {
			return nil, newInvalidArgument("process_options",
				simpleErr(inst.Kind.Name+": positional value after a named option"))
		}
		if posIdx >= len(shorthand) {
			return nil, newInvalidArgument("process_options",
				simpleErr(inst.Kind.Name+": too many positional values"))
		}
		dict[shorthand[posIdx]] = tok
		posIdx++
	}

	if inst.Priv != nil {
		if err := optschema.SetDict(inst.Priv, dict); err != nil {
			return nil, err
		}
	}
	return dict, nil
}

// splitKeyValue splits "key=value" into its parts. Anything without a top
// level '=' is positional.
func splitKeyValue(tok string) (key, val string, isNamed bool) {
	i := strings.IndexByte(tok, '=')
	if i < 0 {
		return "", tok, false
	}
	return tok[:i], tok[i+1:], true
}

// splitTopLevel splits s on sep, ignoring occurrences inside [...] groups
// (channel-layout-style lists can legitimately contain the option
// separator character).
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		default:
			if s[i] == sep && depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

// legacyRewrite applies the per-filter-name textual shims spec §4.11
// requires for backward compatibility with pre-options-pipeline syntax.
func legacyRewrite(name, args string) string {
	switch name {
	case "scale":
		return legacyRewriteScale(args)
	case "format", "noformat":
		return colonToPipe(args, 0)
	case "frei0r", "ocv":
		return colonToPipe(args, 1)
	case "frei0r_src":
		return colonToPipe(args, 3)
	case "aevalsrc":
		return legacyRewriteAevalsrc(args)
	case "mp":
		return legacyRewriteMP(args)
	default:
		return args
	}
}

// legacyRewriteScale returns args unchanged. The old "<w>:<h>:flags=<flags>"
// shape already parses through scale's w/h/flags shorthand, so this shim
// does not detect or split that shape and emits no deprecation warning.
func legacyRewriteScale(args string) string {
	return args
}

// colonToPipe rewrites the first keepColons top-level colons as literal
// colons (left alone) and every later one into a '|', matching the
// pre-options syntax these filters used before ':' became the option
// separator.
func colonToPipe(args string, keepColons int) string {
	var b strings.Builder
	depth := 0
	colonsSeen := 0
	for i := 0; i < len(args); i++ {
		c := args[i]
		switch c {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		}
		if c == ':' && depth == 0 {
			colonsSeen++
			if colonsSeen > keepColons {
				b.WriteByte('|')
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// legacyRewriteAevalsrc rewrites ':'-joined channel expressions (tokens
// with no '=') into '|'-joined ones while leaving option tokens
// (containing '=') as ':'-delimited, and collapses a doubled "::"
// separator (expressions-then-options) to a single '|'.
func legacyRewriteAevalsrc(args string) string {
	tokens := splitTopLevel(args, ':')
	var out []string
	inOptions := false
	for _, tok := range tokens {
		if tok == "" {
			if len(out) > 0 && !inOptions {
				inOptions = true
			}
			continue
		}
		if strings.ContainsRune(tok, '=') {
			inOptions = true
			out = append(out, tok)
			continue
		}
		if inOptions {
			out = append(out, tok)
			continue
		}
		out = append(out, tok)
	}
	// Re-join: expressions seen before the first option with '|', options
	// (and anything after) with ':'.
	var b strings.Builder
	seenOption := false
	for i, tok := range out {
		if i > 0 {
			if seenOption || strings.ContainsRune(tok, '=') {
				b.WriteByte(':')
			} else {
				b.WriteByte('|')
			}
		}
		if strings.ContainsRune(tok, '=') {
			seenOption = true
		}
		b.WriteString(tok)
	}
	return b.String()
}

// legacyRewriteMP strips an optional "filter=" prefix and escapes ':' and
// '=' inside the remaining raw filter spec, matching the old mp filter's
// single opaque argument.
func legacyRewriteMP(args string) string {
	const prefix = "filter="
	rest := args
	if strings.HasPrefix(args, prefix) {
		rest = args[len(prefix):]
	}
	escaped := strings.NewReplacer(":", "\\:", "=", "\\=").Replace(rest)
	return "spec=" + escaped
}
