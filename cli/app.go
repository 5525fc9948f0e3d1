package cli

import (
	"errors"
	"fmt"
	"github.com/saylorsolutions/unit"
	"github.com/saylorsolutions/unit/env"
	"github.com/saylorsolutions/unit/slogx"
	flag "github.com/spf13/pflag"
	"log/slog"
	"slices"
	"sort"
	"strings"
)

const (
	EnvColor = "COLOR" // EnvColor turns colored summaries on or off, and defaults to whether the output is a terminal.

	defaultCommand = "run"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrFailed         = errors.New("tests failed")
	HelpPatterns      = []string{"--help", "-h"} // HelpPatterns is a slice of flags that should trigger the output of usage information for the [App].
)

// CommandFunc is a function that may be executed as a sub-command of an [App].
type CommandFunc = func(flags *flag.FlagSet) error

type command struct {
	key        string
	shortUsage string
	flags      *flag.FlagSet
	exec       CommandFunc
}

// App is a small CLI wrapped around a [unit.Registry].
// Its output goes wherever the registry's output went when the App was created.
type App struct {
	name     string
	reg      *unit.Registry
	printer  *unit.Printer
	commands map[string]*command
}

// New creates an [App] for reg.
// The name is only used in usage information.
func New(name string, reg *unit.Registry) *App {
	printer := unit.NewPrinter()
	printer.Redirect(reg.Output())
	app := &App{
		name:     name,
		reg:      reg,
		printer:  printer,
		commands: map[string]*command{},
	}

	run := app.addCommand("run", "Runs every registered test in order (default)", app.run)
	run.flags.String("log-level", env.Val(unit.EnvLogLevel, "warn"), "Minimum level of run logs")
	run.flags.Bool("color", env.Bool(EnvColor, isTerminal(reg.Output())), "Colors the summary line")
	run.flags.Duration("slow", env.Duration(unit.EnvSlow, 0), "Logs a warning for tests taking longer than this")
	run.flags.BoolP("verbose", "v", false, "Prints a line for every test as it finishes")

	app.addCommand("list", "Lists registered tests in run order", app.list)
	return app
}

func (a *App) addCommand(key, shortUsage string, exec CommandFunc) *command {
	fs := flag.NewFlagSet(key, flag.ContinueOnError)
	fs.BoolP("help", "h", false, "Prints this usage information")
	fs.SetInterspersed(false)
	fs.SetOutput(a.printer.Writer())
	cmd := &command{key: key, shortUsage: shortUsage, flags: fs, exec: exec}
	fs.Usage = func() {
		a.printer.Printf("%s\n\nUSAGE:\n  %s %s [FLAGS]\n\nFLAGS\n%s", cmd.shortUsage, a.name, cmd.key, fs.FlagUsages())
	}
	a.commands[key] = cmd
	return cmd
}

// Exec runs the sub-command named by the first argument, parsing the rest as its flags.
// With no arguments, or only flags, the tests are run.
//
// Usage information is printed when a [UsageError] is returned.
func (a *App) Exec(args []string) error {
	if len(args) > 0 && slices.Contains(HelpPatterns, args[0]) {
		a.printer.Printf("%s", a.Usage())
		return nil
	}
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		args = append([]string{defaultCommand}, args...)
	}
	cmd, ok := a.commands[strings.ToLower(args[0])]
	if !ok {
		err := NewUsageError("%w: %s", ErrUnknownCommand, args[0])
		a.printer.Printf("%s\n\n%s", err, a.Usage())
		return err
	}
	if err := cmd.flags.Parse(args[1:]); err != nil {
		return a.usageError(cmd, NewUsageError("%w", err))
	}
	if help, _ := cmd.flags.GetBool("help"); help {
		cmd.flags.Usage()
		return nil
	}
	if cmd.flags.NArg() > 0 {
		return a.usageError(cmd, NewUsageError("unexpected arguments: %s", strings.Join(cmd.flags.Args(), " ")))
	}
	err := cmd.exec(cmd.flags)
	var usage *UsageError
	if errors.As(err, &usage) {
		return a.usageError(cmd, err)
	}
	return err
}

func (a *App) usageError(cmd *command, err error) error {
	var usage *UsageError
	if errors.As(err, &usage) {
		usage.command = cmd.key
	}
	a.printer.Println(err)
	a.printer.Println()
	cmd.flags.Usage()
	return err
}

// Usage returns the top level usage information, including sub-commands sorted by name.
func (a *App) Usage() string {
	keys := make([]string, 0, len(a.commands))
	maxLen := 0
	for key := range a.commands {
		keys = append(keys, key)
		if len(key) > maxLen {
			maxLen = len(key)
		}
	}
	sort.Strings(keys)
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("USAGE:\n  %s [COMMAND] [FLAGS]\n\nCOMMANDS\n", a.name))
	fmtStr := fmt.Sprintf("  %%-%ds\t%%s\n", maxLen)
	for _, key := range keys {
		buf.WriteString(fmt.Sprintf(fmtStr, key, a.commands[key].shortUsage))
	}
	return buf.String()
}

func (a *App) run(flags *flag.FlagSet) error {
	var (
		levelName = MustGet(flags.GetString("log-level"))
		useColor  = MustGet(flags.GetBool("color"))
		slow      = MustGet(flags.GetDuration("slow"))
		verbose   = MustGet(flags.GetBool("verbose"))
		level     slog.Level
	)
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return NewUsageError("invalid log level '%s'", levelName)
	}
	a.reg.Configure(
		unit.WithLogger(slogx.NewLogger(a.printer.Writer(), level)),
		unit.WithSlowThreshold(slow),
	)
	if verbose {
		remove := a.reg.Observe(a.observe)
		defer remove()
	}
	report, err := a.reg.Run()
	summarize(a.printer.Writer(), report, a.reg.Len(), err != nil, useColor)
	if err != nil {
		return err
	}
	if !report.Passed() {
		return fmt.Errorf("%w: %d of %d", ErrFailed, report.Failed(), report.Total())
	}
	return nil
}

func (a *App) observe(outcome unit.Outcome) {
	verdict := "PASS"
	if !outcome.Passed() {
		verdict = "FAIL"
	}
	a.printer.Printf("%s %s %s (%s)\n", verdict, outcome.Location, outcome.Name, outcome.Duration)
}

func (a *App) list(_ *flag.FlagSet) error {
	for _, t := range a.reg.Tests() {
		a.printer.Printf("%s %s\n", t.Location(), t.Name())
	}
	return nil
}

// MustGet is used with a [flag.FlagSet] getter to panic if the flag is not defined, or is not the right type.
// The developer usually knows whether a get call will fail.
func MustGet[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
