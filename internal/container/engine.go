// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

const (
	// EngineTypeAuto picks Podman when available and Docker otherwise.
	EngineTypeAuto EngineType = "auto"
	// EngineTypePodman is the Podman CLI.
	EngineTypePodman EngineType = "podman"
	// EngineTypeDocker is the Docker CLI.
	EngineTypeDocker EngineType = "docker"
)

var (
	// ErrEngineNotAvailable is the sentinel error wrapped by EngineNotAvailableError.
	ErrEngineNotAvailable = errors.New("container engine not available")
	// ErrInvalidEngineType is the sentinel error wrapped by InvalidEngineTypeError.
	ErrInvalidEngineType = errors.New("invalid container engine type")
)

type (
	// EngineType identifies the container engine CLI.
	EngineType string

	// InvalidEngineTypeError is returned for an EngineType other than auto, podman or docker.
	InvalidEngineTypeError struct {
		Value EngineType
	}

	// EngineNotAvailableError is returned when no requested engine can be used.
	EngineNotAvailableError struct {
		Engine EngineType
		Reason string
	}

	// ExecCommandFunc creates the exec.Cmd for an engine invocation.
	ExecCommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

	// RunOptions describe one `run` of an image.
	RunOptions struct {
		// Image is the image to run.
		Image string
		// Command is the entrypoint override and its arguments.
		Command []string
		// Platform selects an image platform such as linux/386, if set.
		Platform string
		// Env contains environment variables for the container.
		Env map[string]string
		// Remove automatically removes the container after exit.
		Remove bool
		// Interactive keeps stdin open.
		Interactive bool
		// Stdin is the standard input.
		Stdin io.Reader
		// Stdout is where to write standard output.
		Stdout io.Writer
		// Stderr is where to write standard error.
		Stderr io.Writer
	}

	// Engine drives a Docker-compatible container CLI.
	Engine struct {
		typ         EngineType
		binaryPath  string
		execCommand ExecCommandFunc
	}

	// Option configures engine discovery.
	Option func(*discovery)

	discovery struct {
		lookPath    func(string) (string, error)
		execCommand ExecCommandFunc
	}
)

// Error implements the error interface.
func (e *InvalidEngineTypeError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: auto, podman, docker)", string(e.Value))
}

// Unwrap returns ErrInvalidEngineType for errors.Is() compatibility.
func (e *InvalidEngineTypeError) Unwrap() error { return ErrInvalidEngineType }

// Error implements the error interface.
func (e *EngineNotAvailableError) Error() string {
	return fmt.Sprintf("container engine '%s' is not available: %s", e.Engine, e.Reason)
}

// Unwrap returns ErrEngineNotAvailable for errors.Is() compatibility.
func (e *EngineNotAvailableError) Unwrap() error { return ErrEngineNotAvailable }

// String returns the engine type name.
func (t EngineType) String() string { return string(t) }

// IsValid returns whether the EngineType is a known engine. The empty value
// is accepted and means auto.
func (t EngineType) IsValid() (bool, []error) {
	switch t {
	case "", EngineTypeAuto, EngineTypePodman, EngineTypeDocker:
		return true, nil
	default:
		return false, []error{&InvalidEngineTypeError{Value: t}}
	}
}

// WithLookPath replaces exec.LookPath for locating engine binaries.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(d *discovery) { d.lookPath = fn }
}

// WithExecCommand replaces exec.CommandContext for every engine invocation.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(d *discovery) { d.execCommand = fn }
}

// NewEngine returns the preferred engine, falling back to the other one when
// the preferred binary is not installed or its daemon does not answer.
func NewEngine(ctx context.Context, preferred EngineType, opts ...Option) (*Engine, error) {
	if ok, errs := preferred.IsValid(); !ok {
		return nil, errs[0]
	}

	d := discovery{lookPath: exec.LookPath, execCommand: exec.CommandContext}
	for _, opt := range opts {
		opt(&d)
	}

	order := []EngineType{EngineTypePodman, EngineTypeDocker}
	if preferred == EngineTypeDocker {
		order = []EngineType{EngineTypeDocker, EngineTypePodman}
	}
	for _, typ := range order {
		path, err := d.lookPath(string(typ))
		if err != nil || path == "" {
			continue
		}
		e := &Engine{typ: typ, binaryPath: path, execCommand: d.execCommand}
		if e.Available(ctx) {
			return e, nil
		}
	}

	if preferred == "" {
		preferred = EngineTypeAuto
	}
	return nil, &EngineNotAvailableError{
		Engine: preferred,
		Reason: "neither podman nor docker is installed and answering",
	}
}

// Name returns the engine name.
func (e *Engine) Name() string { return string(e.typ) }

// BinaryPath returns the path to the engine binary.
func (e *Engine) BinaryPath() string { return e.binaryPath }

// Available reports whether the engine answers a version query.
func (e *Engine) Available(ctx context.Context) bool {
	format := "{{.Version}}"
	if e.typ == EngineTypeDocker {
		format = "{{.Server.Version}}"
	}
	return e.execCommand(ctx, e.binaryPath, "version", "--format", format).Run() == nil
}

// RunArgs constructs arguments for a container run command.
//
// Generated command: <binary> run [options] <image> <command...>
func (e *Engine) RunArgs(opts RunOptions) []string {
	args := []string{"run"}

	if opts.Remove {
		args = append(args, "--rm")
	}
	if opts.Interactive {
		args = append(args, "-i")
	}
	if opts.Platform != "" {
		args = append(args, "--platform", opts.Platform)
	}
	for _, k := range sortedKeys(opts.Env) {
		args = append(args, "-e", k+"="+opts.Env[k])
	}
	if len(opts.Command) > 0 {
		args = append(args, "--entrypoint", opts.Command[0])
	}

	args = append(args, opts.Image)
	if len(opts.Command) > 1 {
		args = append(args, opts.Command[1:]...)
	}
	return args
}

// Run runs opts.Command in a container of opts.Image and waits for it.
func (e *Engine) Run(ctx context.Context, opts RunOptions) error {
	args := e.RunArgs(opts)

	cmd := e.execCommand(ctx, e.binaryPath, args...)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s run %s failed: %w", e.typ, opts.Image, err)
	}
	return nil
}

// Output runs opts like Run and returns the captured stdout and stderr.
func (e *Engine) Output(ctx context.Context, opts RunOptions) (stdout, stderr []byte, err error) {
	var outBuf, errBuf bytes.Buffer
	opts.Stdout = &outBuf
	opts.Stderr = &errBuf
	err = e.Run(ctx, opts)
	return outBuf.Bytes(), errBuf.Bytes(), err
}
