/*
Package cli wraps a [unit.Registry] in a small command line interface, for programs that ship their own tests.

There are a few reasonable (IMHO) policies for how this operates.

  - User-visible output goes wherever the registry writes, which is STDERR by default.
  - This package uses [pflag] for posix style flags, and flags are NOT interspersed.
  - Running the tests is the default, so a bare invocation does the obvious thing.
  - Flags override environment variables, which override the defaults.

# Invocation

	CLI_NAME [run|list] [FLAGS...]

The run command runs every registered test and prints a one line summary, which is colored when writing to a terminal.
The list command prints each registered test's location and name in run order, without running anything.

Use [Main] as the body of a main function to get conventional exit codes.

[pflag]: https://github.com/spf13/pflag
*/
package cli
