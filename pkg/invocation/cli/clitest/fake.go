// Package clitest provides a scriptable cli.Runner for tests.
package clitest

import (
	"context"
	"sync"

	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/cli"
)

// FakeRunner records every invocation. OnRun, when set, decides the result;
// otherwise Output and Err are returned.
type FakeRunner struct {
	Output string
	Err    error
	OnRun  func(args []string) (string, error)

	mu    sync.Mutex
	calls [][]string
}

var _ cli.Runner = &FakeRunner{}

func (f *FakeRunner) Run(_ context.Context, args []string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{}, args...))
	f.mu.Unlock()

	if f.OnRun != nil {
		return f.OnRun(args)
	}
	return f.Output, f.Err
}

func (f *FakeRunner) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string{}, f.calls...)
}

func (f *FakeRunner) LastCall() []string {
	calls := f.Calls()
	if len(calls) == 0 {
		return nil
	}
	return calls[len(calls)-1]
}

// FlagValue returns the value following --name in args.
func FlagValue(args []string, name string) (string, bool) {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "--"+name {
			return args[i+1], true
		}
	}
	return "", false
}

// FlagValues returns every value passed for a repeated --name.
func FlagValues(args []string, name string) []string {
	var values []string
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "--"+name {
			values = append(values, args[i+1])
		}
	}
	return values
}
