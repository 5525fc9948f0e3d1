package unit

import (
	"bytes"
	"errors"
	"fmt"
	engine "github.com/saylorsolutions/unit/assert"
	"github.com/saylorsolutions/unit/slogx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestRegistry_Test(t *testing.T) {
	reg := NewRegistry()
	a := reg.Test("a", func(*T) {})
	b := reg.Test("b", func(*T) {})
	tests := reg.Tests()
	require.Len(t, tests, 2)
	assert.Equal(t, 2, reg.Len())
	assert.Same(t, a, tests[0])
	assert.Same(t, b, tests[1])
	assert.Equal(t, "a", a.Name())
	assert.Equal(t, "registry_test.go", a.Location().File)
	assert.Equal(t, a.Location().Line+1, b.Location().Line)
	assert.Zero(t, a.Failures())

	tests[0] = nil
	assert.Same(t, a, reg.Tests()[0], "Tests should return a copy")
}

func TestRegistry_Add(t *testing.T) {
	reg := NewRegistry()
	test := reg.Add("explicit", "/some/where/explicit.go", 12, func(*T) {})
	assert.Equal(t, Location{File: "explicit.go", Line: 12}, test.Location())
	assert.Equal(t, "explicit.go:12", test.Location().String())
	assert.Panics(t, func() {
		reg.Add("nil", "x.go", 1, nil)
	})
}

func TestRegistry_Run_Order(t *testing.T) {
	var order []string
	reg := NewRegistry()
	for _, name := range []string{"one", "two", "three"} {
		name := name
		reg.Test(name, func(*T) {
			order = append(order, name)
		})
	}
	report, err := reg.Run()
	require.NoError(t, err)
	assert.True(t, report.Passed())
	assert.Equal(t, []string{"one", "two", "three"}, order)
	assert.Equal(t, 3, report.Total())
	assert.Zero(t, report.Failed())
	assert.NoError(t, report.Err())
}

func TestRegistry_Run_OneFailure(t *testing.T) {
	var (
		buf  bytes.Buffer
		line int
	)
	reg := NewRegistry(WithOutput(&buf))
	reg.Test("T1", func(u *T) {
		line = nextLine()
		Eq(u, 1+1, 3)
	})
	reg.Test("T2", func(u *T) {
		Eq(u, 2, 2)
	})
	report, err := reg.Run()
	require.NoError(t, err)
	assert.False(t, report.Passed())
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 1, report.Outcomes[0].Failures)
	assert.True(t, report.Outcomes[1].Passed())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	expected := fmt.Sprintf(`registry_test.go:%d in Test(T1) Assert Failed: compare {1+1} == {3} got {"2"} == {"3"}`, line)
	assert.Equal(t, expected, lines[0])
	assert.Contains(t, report.Err().Error(), "Test(T1): 1 failed assertion(s)")
}

func TestRegistry_Run_Empty(t *testing.T) {
	reg := NewRegistry()
	report, err := reg.Run()
	require.NoError(t, err)
	assert.True(t, report.Passed(), "No tests is a pass")
	assert.Zero(t, report.Total())
	assert.True(t, reg.RunTests())
}

type stringer struct{}

func (stringer) String() string {
	return "stringer message"
}

func TestRegistry_Run_Panic(t *testing.T) {
	var (
		buf   bytes.Buffer
		count int
		ran   []bool
	)
	reg := NewRegistry(WithOutput(&buf))
	body := func(*T) {
		ran = append(ran, true)
	}
	panics := func(u *T) {
		Eq(u, 1, 2)
		panic(errors.New("boom"))
	}
	reg.Test("first", body)
	line := nextLine()
	reg.Test("error", panics)
	reg.Test("string", func(*T) { panic("text") })
	reg.Test("stringer", func(*T) { panic(stringer{}) })
	reg.Test("value", func(*T) { panic(42) })
	reg.Test("last", body)

	report, err := reg.Run()
	require.NoError(t, err, "A panic shouldn't stop the run")
	assert.Equal(t, 2, len(ran), "Tests before and after the panics should run")
	assert.False(t, report.Passed())
	assert.Equal(t, 4, report.Failed())
	require.Equal(t, 6, report.Total())

	errOutcome := report.Outcomes[1]
	assert.True(t, errOutcome.Panicked)
	assert.Equal(t, "boom", errOutcome.Message)
	assert.Equal(t, 1, errOutcome.Failures, "A panic doesn't count as an assertion failure")
	assert.Equal(t, "text", report.Outcomes[2].Message)
	assert.Equal(t, "stringer message", report.Outcomes[3].Message)
	assert.Empty(t, report.Outcomes[4].Message)

	out := buf.String()
	assert.Contains(t, out, fmt.Sprintf("registry_test.go:%d Test(error) raised an uncaught panic with message boom\n", line))
	assert.Contains(t, out, "Test(string) raised an uncaught panic with message text\n")
	assert.Contains(t, out, "Test(value) raised an uncaught panic\n")
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.Contains(l, "uncaught panic") {
			count++
		}
	}
	assert.Equal(t, 4, count)

	err = report.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Test(error): uncaught panic: boom")
}

func TestRegistry_Run_Fatal(t *testing.T) {
	var (
		buf          bytes.Buffer
		after, other bool
	)
	reg := NewRegistry(WithOutput(&buf))
	reg.Test("before", func(u *T) {
		Eq(u, 1, 2)
	})
	reg.Test("fatal", func(u *T) {
		AssertEq(u, 1, 2)
		after = true
	})
	reg.Test("other", func(*T) {
		other = true
	})
	report, err := reg.Run()
	require.ErrorIs(t, err, ErrFatal)
	assert.False(t, after, "Nothing after a fatal assertion should run")
	assert.False(t, other, "No other tests should run after a fatal assertion")

	var fatal *engine.FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, "fatal", fatal.Name)
	assert.Equal(t, "registry_test.go", fatal.File)

	require.Equal(t, 2, report.Total())
	assert.True(t, report.Outcomes[1].Fatal)
	assert.False(t, report.Outcomes[1].Panicked)
	assert.ErrorIs(t, report.Err(), ErrFatal)
	assert.Equal(t, 2, strings.Count(buf.String(), "Assert Failed"))
	assert.NotContains(t, buf.String(), "uncaught panic")
}

func TestRegistry_Run_FatalRecovered(t *testing.T) {
	var other bool
	reg := NewRegistry(WithOutput(&bytes.Buffer{}))
	reg.Test("swallowed", func(u *T) {
		defer func() {
			_ = recover()
		}()
		AssertTrue(u, false)
	})
	reg.Test("other", func(*T) {
		other = true
	})
	_, err := reg.Run()
	assert.ErrorIs(t, err, ErrFatal, "Recovering the signal in the test shouldn't hide it")
	assert.False(t, other)
}

func TestRegistry_RunTests(t *testing.T) {
	code := stubExit(t)
	reg := NewRegistry(WithOutput(&bytes.Buffer{}))
	reg.Test("pass", func(u *T) {
		True(u, true)
	})
	assert.True(t, reg.RunTests())
	assert.Equal(t, -1, *code)

	reg.Test("fatal", func(u *T) {
		AssertFalse(u, true)
	})
	assert.False(t, reg.RunTests())
	assert.Equal(t, 1, *code)
}

func TestRegistry_RunTests_FatalExitsProcess(t *testing.T) {
	if os.Getenv("FATAL_CHILD") == "1" {
		reg := NewRegistry()
		reg.Test("fatal", func(u *T) {
			AssertFalse(u, true)
		})
		reg.RunTests()
		_, _ = fmt.Fprintln(os.Stderr, "unreachable")
		return
	}
	cmd := exec.Command(os.Args[0], "-test.run=^TestRegistry_RunTests_FatalExitsProcess$")
	cmd.Env = append(os.Environ(), "FATAL_CHILD=1")
	out, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, string(out))
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(out), "in Test(fatal) Assert Failed: evaluate {true} == false")
	assert.NotContains(t, string(out), "unreachable")
}

func TestRegistry_Logging(t *testing.T) {
	var logs bytes.Buffer
	reg := NewRegistry(
		WithOutput(&bytes.Buffer{}),
		WithLogger(slogx.NewLogger(&logs, slog.LevelDebug)),
		WithSlowThreshold(time.Nanosecond),
	)
	reg.Test("slow", func(u *T) {
		u.Logger().Info("From the test")
		time.Sleep(time.Millisecond)
	})
	reg.Test("panics", func(*T) {
		panic("boom")
	})
	report, err := reg.Run()
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "msg=\"Starting test run\"")
	assert.Contains(t, out, "run="+report.ID.String())
	assert.Contains(t, out, "msg=\"From the test\"")
	assert.Contains(t, out, "test=slow")
	assert.Contains(t, out, "msg=\"Slow test\"")
	assert.Contains(t, out, "msg=\"Uncaught panic in test\"")
	assert.Contains(t, out, "msg=\"Finished test run\"")

	logs.Reset()
	reg.Configure(WithLogger(nil))
	_, _ = reg.Run()
	assert.Empty(t, logs.String(), "A nil logger should discard")
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("UNIT_LOG_LEVEL", "debug")
	t.Setenv("UNIT_SLOW", "5ms")
	conf := ConfigFromEnv()
	assert.Equal(t, slog.LevelDebug, conf.LogLevel)
	assert.Equal(t, 5*time.Millisecond, conf.Slow)

	t.Setenv("UNIT_LOG_LEVEL", "nonsense")
	t.Setenv("UNIT_SLOW", "")
	conf = ConfigFromEnv()
	assert.Equal(t, slog.LevelWarn, conf.LogLevel)
	assert.Zero(t, conf.Slow)
}

func TestDefault(t *testing.T) {
	before := Default.Len()
	test := Test("default registry", func(*T) {})
	assert.Equal(t, before+1, Default.Len())
	assert.Same(t, test, Default.Tests()[before])
	assert.Equal(t, "registry_test.go", test.Location().File)
}

func TestRegistry_Observer(t *testing.T) {
	var seen []Outcome
	reg := NewRegistry(WithOutput(&bytes.Buffer{}), WithObserver(func(o Outcome) {
		seen = append(seen, o)
	}))
	reg.Test("pass", func(*T) {})
	reg.Test("fail", func(u *T) { Eq(u, 1, 2) })
	reg.Test("fatal", func(u *T) { AssertEq(u, 1, 2) })
	reg.Test("never", func(*T) {})
	report, err := reg.Run()
	require.ErrorIs(t, err, ErrFatal)
	assert.Equal(t, report.Outcomes, seen, "Observers should see every started test, including the fatal one")
	assert.Panics(t, func() {
		WithObserver(nil)(reg)
	})
}

func TestRegistry_Run_ForeignFatalIsPanic(t *testing.T) {
	var buf bytes.Buffer
	reg := NewRegistry(WithOutput(&buf))
	reg.Test("nested", func(*T) {
		inner := NewRegistry(WithOutput(&bytes.Buffer{}))
		inner.Test("inner", func(v *T) {
			AssertTrue(v, false)
		})
		_, err := inner.Run()
		panic(err)
	})
	report, err := reg.Run()
	require.NoError(t, err, "Another registry's fatal signal shouldn't stop this run")
	require.Equal(t, 1, report.Total())
	outcome := report.Outcomes[0]
	assert.True(t, outcome.Panicked)
	assert.False(t, outcome.Fatal)
	assert.False(t, report.Passed())
	assert.Contains(t, outcome.Message, "fatal assertion failed")
	assert.Contains(t, buf.String(), "Test(nested) raised an uncaught panic with message test run stopped: fatal assertion failed")
}

func TestRegistry_Run_PanicAfterRecoveredFatal(t *testing.T) {
	var buf bytes.Buffer
	reg := NewRegistry(WithOutput(&buf))
	reg.Test("both", func(u *T) {
		func() {
			defer func() {
				_ = recover()
			}()
			AssertTrue(u, false)
		}()
		panic("later")
	})
	report, err := reg.Run()
	require.ErrorIs(t, err, ErrFatal)
	outcome := report.Outcomes[0]
	assert.True(t, outcome.Fatal)
	assert.True(t, outcome.Panicked)
	assert.Equal(t, "later", outcome.Message)
}

func TestRegistry_Logging_TestAttrsReplaced(t *testing.T) {
	var logs bytes.Buffer
	reg := NewRegistry(
		WithOutput(&bytes.Buffer{}),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)
	reg.Test("original", func(u *T) {
		u.Logger().With("test", "renamed").Info("From the test")
	})
	_, err := reg.Run()
	require.NoError(t, err)

	line := logs.String()
	assert.Equal(t, 1, strings.Count(line, "test="), "The test key should only appear once")
	assert.Contains(t, line, "test=renamed")
	assert.Equal(t, 1, strings.Count(line, "run="))
}

func TestRegistry_Observe(t *testing.T) {
	var first, second int
	reg := NewRegistry(WithOutput(&bytes.Buffer{}))
	reg.Test("pass", func(*T) {})
	removeFirst := reg.Observe(func(Outcome) { first++ })
	removeSecond := reg.Observe(func(Outcome) { second++ })
	_, err := reg.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)

	removeFirst()
	removeFirst()
	_, err = reg.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, first, "A removed observer shouldn't be called")
	assert.Equal(t, 2, second, "Removing twice shouldn't take out another observer")

	removeSecond()
	_, err = reg.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, second)
	assert.Panics(t, func() {
		reg.Observe(nil)
	})
}
