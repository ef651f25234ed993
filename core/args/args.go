package args

import (
	"fmt"
	"strings"
)

// KeyPath is the option that selects the identifier source.
const KeyPath = "path"

// Options are the startup options understood by the filter.
type Options struct {
	// Path is the source location given with -path, empty if absent.
	Path string
	// Rest holds the tokens that are neither options nor option values, in order.
	Rest []string
}

// StartupArgError reports a malformed or unrecognized startup option.
type StartupArgError struct {
	// Index is the position of the offending token in the argument list.
	Index  int
	Arg    string
	Reason string
}

func (e *StartupArgError) Error() string {
	if e.Arg == "" {
		return fmt.Sprintf("arg %d %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("arg %d is an option '%s' %s", e.Index, e.Arg, e.Reason)
}

// Parse reads host-style options from argv in a single pass.
//
// Options start with one or more dashes. The value follows an '=' in the same token
// or is taken from the next token. Option names match case-insensitively by prefix,
// so -path, -PATH and -paths all set Path.
func Parse(argv []string) (Options, error) {
	var opts Options

	for idx := 0; idx < len(argv); idx++ {
		arg := argv[idx]
		if arg == "" {
			continue
		}
		if arg[0] != '-' {
			opts.Rest = append(opts.Rest, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if name == "" {
			return Options{}, &StartupArgError{Index: idx, Reason: "has an option prefix but no name"}
		}

		key, value, found := strings.Cut(name, "=")
		if key == "" {
			return Options{}, &StartupArgError{Index: idx, Reason: "has an option prefix but no name"}
		}
		if !found {
			if idx+1 >= len(argv) {
				return Options{}, &StartupArgError{Index: idx, Arg: key, Reason: "requires a value but none was found"}
			}
			idx++
			value = argv[idx]
		}

		switch {
		case hasPrefixFold(key, KeyPath):
			opts.Path = value
		default:
			return Options{}, &StartupArgError{Index: idx, Arg: key, Reason: "is unrecognized"}
		}
	}

	return opts, nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
