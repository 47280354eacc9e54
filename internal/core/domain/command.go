package domain

import "strings"

// Command is an external process invocation.
type Command struct {
	// Name is the executable to run.
	Name string
	// Args are passed to the executable verbatim.
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds extra "KEY=VALUE" entries layered over the current environment.
	Env []string
}

// String renders the command line for logs and error metadata.
func (c *Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}
