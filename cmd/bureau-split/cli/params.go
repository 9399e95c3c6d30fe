// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/pflag"
)

// FlagsFromParams returns a new flag set bound to the tagged fields of
// params, which must be a pointer to a struct. Panics if binding fails:
// a bad tag is a programming error, not user input.
//
// Typical use is a params variable captured by both closures:
//
//	var params verifyParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("verify", &params) },
//	    Run:   func(ctx context.Context, args []string) error { /* read params */ },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers a flag on flagSet for every field of *params
// carrying a flag tag:
//
//	Manifest string        `flag:"manifest" desc:"manifest path"`
//	Verbose  bool          `flag:"verbose,v" desc:"log per-file detail"`
//	Limit    bytesize.Size `flag:"size-limit" default:"100M"`
//
// The flag tag is the long name with an optional one-letter shorthand
// after a comma. default is parsed exactly like a command-line value.
// Fields reset to their zero value (or default) on every bind, so a
// rebuilt flag set never sees values from an earlier parse. Values
// given for a []string field with a default extend the default.
//
// Supported field types are string, bool, int, int64, []string, and
// any type whose pointer implements [pflag.Value]. Embedded structs
// are bound recursively.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(value.Elem(), flagSet)
}

func bindStruct(structValue reflect.Value, flagSet *pflag.FlagSet) error {
	for i := range structValue.NumField() {
		field := structValue.Type().Field(i)
		fieldValue := structValue.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStruct(fieldValue, flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		tag, ok := field.Tag.Lookup("flag")
		if !ok || tag == "" {
			continue
		}
		name, shorthand, _ := strings.Cut(tag, ",")

		value, err := flagValue(fieldValue)
		if err != nil {
			return fmt.Errorf("field %s (--%s): %w", field.Name, name, err)
		}

		fieldValue.Set(reflect.Zero(fieldValue.Type()))
		flag := flagSet.VarPF(value, name, shorthand, field.Tag.Get("desc"))
		if boolean, ok := value.(interface{ IsBoolFlag() bool }); ok && boolean.IsBoolFlag() {
			flag.NoOptDefVal = "true"
		}

		if defaultText := field.Tag.Get("default"); defaultText != "" {
			if err := value.Set(defaultText); err != nil {
				return fmt.Errorf("field %s: default for --%s: %w", field.Name, name, err)
			}
			flag.DefValue = value.String()
		}
	}
	return nil
}

// flagValue adapts an addressable struct field to a [pflag.Value].
// The built-in kinds borrow pflag's own Value implementations by
// registering them on a scratch flag set.
func flagValue(fieldValue reflect.Value) (pflag.Value, error) {
	if !fieldValue.CanAddr() {
		return nil, fmt.Errorf("not addressable")
	}
	scratch := pflag.NewFlagSet("", pflag.ContinueOnError)

	switch target := fieldValue.Addr().Interface().(type) {
	case *string:
		scratch.StringVar(target, "v", "", "")
	case *bool:
		scratch.BoolVar(target, "v", false, "")
	case *int:
		scratch.IntVar(target, "v", 0, "")
	case *int64:
		scratch.Int64Var(target, "v", 0, "")
	case *[]string:
		scratch.StringSliceVar(target, "v", nil, "")
	case pflag.Value:
		return target, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", fieldValue.Type())
	}
	return scratch.Lookup("v").Value, nil
}
