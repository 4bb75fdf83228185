// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagBinder is a params field that registers its own flags, such as
// [LogParams]. [BindFlags] calls AddFlags instead of reading tags.
type FlagBinder interface {
	AddFlags(flagSet *pflag.FlagSet)
}

// FlagsFromParams returns a flag set bound to params, a pointer to a
// tagged struct. A malformed params struct is a programming error and
// panics.
//
//	var params bakeParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("bake", &params) },
//	    Run:   func(ctx context.Context, args []string) error { ... },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers a flag for every tagged field of the struct
// params points to:
//
//	Output string `flag:"output,o" desc:"output file" default:"out.bin"`
//
// The flag tag holds the long name and an optional one-letter
// shorthand. Supported field types are string, bool, int and []string
// (comma-separated default). Embedded structs are walked, except those
// implementing [FlagBinder]. Embedded structs must be exported types.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(value.Elem(), flagSet)
}

func bindStruct(value reflect.Value, flagSet *pflag.FlagSet) error {
	for i := range value.NumField() {
		field := value.Type().Field(i)
		fieldValue := value.Field(i)
		// Values reached through unexported fields cannot be bound.
		if !field.IsExported() {
			continue
		}

		if binder, ok := fieldValue.Addr().Interface().(FlagBinder); ok {
			binder.AddFlags(flagSet)
			continue
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStruct(fieldValue, flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		tag, ok := field.Tag.Lookup("flag")
		if !ok {
			continue
		}
		spec := flagSpec{description: field.Tag.Get("desc"), fallback: field.Tag.Get("default")}
		spec.name, spec.shorthand, _ = strings.Cut(tag, ",")
		if err := spec.bind(fieldValue.Addr().Interface(), flagSet); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

// flagSpec is one parsed flag tag.
type flagSpec struct {
	name        string
	shorthand   string
	description string
	fallback    string
}

func (s flagSpec) bind(target any, flagSet *pflag.FlagSet) error {
	switch target := target.(type) {
	case *string:
		flagSet.StringVarP(target, s.name, s.shorthand, s.fallback, s.description)
	case *bool:
		fallback := false
		if s.fallback != "" {
			parsed, err := strconv.ParseBool(s.fallback)
			if err != nil {
				return fmt.Errorf("default for --%s: %w", s.name, err)
			}
			fallback = parsed
		}
		flagSet.BoolVarP(target, s.name, s.shorthand, fallback, s.description)
	case *int:
		fallback := 0
		if s.fallback != "" {
			parsed, err := strconv.Atoi(s.fallback)
			if err != nil {
				return fmt.Errorf("default for --%s: %w", s.name, err)
			}
			fallback = parsed
		}
		flagSet.IntVarP(target, s.name, s.shorthand, fallback, s.description)
	case *[]string:
		var fallback []string
		if s.fallback != "" {
			fallback = strings.Split(s.fallback, ",")
		}
		flagSet.StringSliceVarP(target, s.name, s.shorthand, fallback, s.description)
	default:
		return fmt.Errorf("--%s: unsupported type %T", s.name, target)
	}
	return nil
}

// RequireArgs checks the positional argument count. A negative maximum
// means no upper bound.
func RequireArgs(args []string, minimum, maximum int, usage string) error {
	if len(args) < minimum || (maximum >= 0 && len(args) > maximum) {
		return Validation("usage: %s", usage)
	}
	return nil
}
