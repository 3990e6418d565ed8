// SPDX-License-Identifier: MPL-2.0

// Package probe gathers toolchain symbols by asking a real C++ compiler for
// its predefined macros.
package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/shell"

	"github.com/coral/coralenv/pkg/symbols"
)

// dumpArgs make a GNU-compatible driver print every predefined macro of an
// empty C++ translation unit read from stdin.
var dumpArgs = []string{"-dM", "-E", "-x", "c++", "-"}

var (
	// ErrProbeFailed is the sentinel error wrapped by ProbeError.
	ErrProbeFailed = errors.New("compiler probe failed")
	// ErrEmptyCommand is returned when the compiler command expands to nothing.
	ErrEmptyCommand = errors.New("compiler command is empty")
)

type (
	// Runner executes a command with the given stdin and returns its output.
	Runner interface {
		Run(ctx context.Context, name string, args []string, stdin io.Reader) (stdout, stderr []byte, err error)
	}

	// ExecRunner runs commands on the host with os/exec.
	ExecRunner struct{}

	// Prober runs compiler probes.
	Prober struct {
		runner Runner
		logger *log.Logger
		getenv func(string) string
	}

	// Option configures a Prober.
	Option func(*Prober)

	// ProbeError describes a failed probe.
	ProbeError struct {
		Command string
		Stderr  string
		Err     error
	}
)

// Error implements the error interface.
func (e *ProbeError) Error() string {
	msg := fmt.Sprintf("compiler probe %q failed: %v", e.Command, e.Err)
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

// Unwrap returns ErrProbeFailed and the underlying cause.
func (e *ProbeError) Unwrap() []error { return []error{ErrProbeFailed, e.Err} }

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// WithRunner replaces the host command runner.
func WithRunner(r Runner) Option {
	return func(p *Prober) { p.runner = r }
}

// WithLogger sets the logger for probe diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(p *Prober) { p.logger = l }
}

// WithEnv sets the lookup used to expand $VARS in compiler commands.
func WithEnv(getenv func(string) string) Option {
	return func(p *Prober) { p.getenv = getenv }
}

// New creates a Prober that runs host commands and expands variables from
// the process environment unless configured otherwise.
func New(opts ...Option) *Prober {
	p := &Prober{
		runner: ExecRunner{},
		logger: log.New(io.Discard),
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe runs command with the macro dump arguments appended and parses the
// result. command is split like a shell would split it, so it may carry
// quoted paths, extra flags or variables such as "$CXX -m32".
func (p *Prober) Probe(ctx context.Context, command string) (symbols.Set, error) {
	argv, err := shell.Fields(command, p.getenv)
	if err != nil {
		return symbols.Set{}, &ProbeError{Command: command, Err: err}
	}
	if len(argv) == 0 {
		return symbols.Set{}, &ProbeError{Command: command, Err: ErrEmptyCommand}
	}

	args := append(argv[1:len(argv):len(argv)], dumpArgs...)
	p.logger.Debug("probing compiler", "command", argv[0], "args", strings.Join(args, " "))

	stdout, stderr, err := p.runner.Run(ctx, argv[0], args, strings.NewReader(""))
	if err != nil {
		return symbols.Set{}, &ProbeError{Command: command, Stderr: strings.TrimSpace(string(stderr)), Err: err}
	}

	set, err := symbols.Parse(bytes.NewReader(stdout))
	if err != nil {
		return symbols.Set{}, &ProbeError{Command: command, Err: err}
	}
	p.logger.Debug("compiler probe complete", "symbols", set.Len())
	return set, nil
}

// LoadFile reads a symbol dump previously written by a compiler or by
// symbols.Set.WriteTo.
func LoadFile(path string) (symbols.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return symbols.Set{}, err
	}
	defer f.Close()

	set, err := symbols.Parse(f)
	if err != nil {
		return symbols.Set{}, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}
