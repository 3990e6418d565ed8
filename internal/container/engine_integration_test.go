// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/coral/coralenv/internal/probe"
	"github.com/coral/coralenv/pkg/buildenv"
)

func TestRunnerProbe_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if runtime.GOARCH != "amd64" {
		t.Skip("skipping container integration test: gcc image must run on x86_64")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	engine, err := NewEngine(ctx, EngineTypeAuto)
	if err != nil {
		t.Skipf("skipping container integration test: %v", err)
	}

	p := probe.New(probe.WithRunner(NewRunner(engine, "docker.io/library/gcc:13", "")))
	set, err := p.Probe(ctx, "g++")
	if err != nil {
		t.Fatalf("Probe() via %s error = %v", engine.Name(), err)
	}

	env, err := buildenv.Resolve(buildenv.Inputs{Symbols: set, PointerSize: 8})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := env.Key.String(); !strings.HasPrefix(got, "Linux x86_64 gcc-13.") {
		t.Errorf("key = %q, want a Linux x86_64 gcc-13.x key", got)
	}
}
