package cli

import (
	"strconv"
)

// Args builds the argument vector of a single CLI invocation. Optional values
// that are nil are left out entirely.
type Args struct {
	argv []string
}

func NewArgs(subcommands ...string) *Args {
	return &Args{argv: append([]string{}, subcommands...)}
}

// Flag appends --name value unconditionally.
func (a *Args) Flag(name, value string) *Args {
	a.argv = append(a.argv, "--"+name, value)
	return a
}

// String appends --name *value when value is set and non-empty.
func (a *Args) String(name string, value *string) *Args {
	if value != nil && *value != "" {
		a.Flag(name, *value)
	}
	return a
}

func (a *Args) Int(name string, value *int) *Args {
	if value != nil {
		a.Flag(name, strconv.Itoa(*value))
	}
	return a
}

func (a *Args) Float(name string, value *float64) *Args {
	if value != nil {
		a.Flag(name, strconv.FormatFloat(*value, 'f', -1, 64))
	}
	return a
}

// Number appends --name value for a required numeric field.
func (a *Args) Number(name string, value float64) *Args {
	return a.Flag(name, strconv.FormatFloat(value, 'f', -1, 64))
}

// Repeated appends one --name occurrence per element of values.
func (a *Args) Repeated(name string, values []string) *Args {
	for _, v := range values {
		a.Flag(name, v)
	}
	return a
}

// Bool appends --name with no value when set is true.
func (a *Args) Bool(name string, set bool) *Args {
	if set {
		a.argv = append(a.argv, "--"+name)
	}
	return a
}

func (a *Args) Build() []string {
	return append([]string{}, a.argv...)
}
