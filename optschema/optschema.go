// Package optschema is the option-schema runtime collaborator spec.md
// names but declines to specify (opt_next, opt_set, opt_set_defaults,
// opt_set_dict, opt_find). A filter kind's private state is an ordinary Go
// struct whose fields carry an `opt:"name"` tag (and, optionally,
// `optdefault:"literal"`); this package walks that struct with reflect the
// way a tag-driven decoder does, since none of the retrieved pack's
// repositories carry a reflection-based options library to adopt wholesale.
package optschema

import (
	"fmt"
	"reflect"
	"strconv"
)

// field describes one tagged, settable option field.
type field struct {
	name       string
	def        string
	hasDefault bool
	index      int
}

// fields returns the tagged fields of priv's element type, in declaration
// order. priv must be a non-nil pointer to a struct.
func fields(priv interface{}) ([]field, reflect.Value, error) {
	v := reflect.ValueOf(priv)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, reflect.Value{}, fmt.Errorf("optschema: priv must be a non-nil pointer to a struct")
	}
	elem := v.Elem()
	t := elem.Type()
	var out []field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, ok := sf.Tag.Lookup("opt")
		if !ok {
			continue
		}
		def, hasDefault := sf.Tag.Lookup("optdefault")
		out = append(out, field{name: name, def: def, hasDefault: hasDefault, index: i})
	}
	return out, elem, nil
}

// Find reports whether priv declares an option named name.
func Find(priv interface{}, name string) bool {
	fs, _, err := fields(priv)
	if err != nil {
		return false
	}
	for _, f := range fs {
		if f.name == name {
			return true
		}
	}
	return false
}

// Next yields the option name declared after prev (or the first if prev is
// empty), mirroring opt_next's iteration contract.
func Next(priv interface{}, prev string) (string, bool) {
	fs, _, err := fields(priv)
	if err != nil || len(fs) == 0 {
		return "", false
	}
	if prev == "" {
		return fs[0].name, true
	}
	for i, f := range fs {
		if f.name == prev {
			if i+1 < len(fs) {
				return fs[i+1].name, true
			}
			return "", false
		}
	}
	return "", false
}

// Set assigns value (parsed per the field's Go type) to the option named
// name on priv. It reports false if no such option is declared.
func Set(priv interface{}, name, value string) (bool, error) {
	fs, elem, err := fields(priv)
	if err != nil {
		return false, err
	}
	for _, f := range fs {
		if f.name != name {
			continue
		}
		fv := elem.Field(f.index)
		if err := assign(fv, value); err != nil {
			return true, fmt.Errorf("optschema: option %q: %w", name, err)
		}
		return true, nil
	}
	return false, nil
}

func assign(fv reflect.Value, value string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		fv.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	default:
		return fmt.Errorf("unsupported option field kind %s", fv.Kind())
	}
	return nil
}

// SetDefaults applies every declared default value to priv, mirroring
// opt_set_defaults.
func SetDefaults(priv interface{}) error {
	fs, _, err := fields(priv)
	if err != nil {
		return err
	}
	for _, f := range fs {
		if !f.hasDefault {
			continue
		}
		if _, err := Set(priv, f.name, f.def); err != nil {
			return err
		}
	}
	return nil
}

// SetDict applies every key in dict to priv via Set, removing consumed
// keys from dict in place and leaving unrecognized keys behind for the
// caller to report as "no such option", mirroring opt_set_dict.
func SetDict(priv interface{}, dict map[string]string) error {
	for k, v := range dict {
		found, err := Set(priv, k, v)
		if err != nil {
			return err
		}
		if found {
			delete(dict, k)
		}
	}
	return nil
}
