package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// UsageError reports a command invoked the wrong way. Nothing has been modified.
type UsageError struct {
	Command string
	Usage   string
	Err     error
}

func (e *UsageError) Error() string {
	var b strings.Builder
	if e.Err != nil {
		fmt.Fprintf(&b, "%s.\n", upperFirst(e.Err.Error()))
	} else {
		fmt.Fprintf(&b, "Invalid usage of command '%s'.\n", e.Command)
	}
	fmt.Fprintf(&b, "Usage: %s", e.Usage)
	return b.String()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageLine(c *cobra.Command) string {
	return c.Root().Name() + " " + c.Use
}

func usageError(c *cobra.Command, err error) error {
	return &UsageError{Command: c.Name(), Usage: usageLine(c), Err: err}
}

// arity accepts between min and max positional arguments.
func arity(min, max int) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		if len(args) < min || len(args) > max {
			return usageError(c, nil)
		}
		return nil
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
