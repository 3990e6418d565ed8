// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"io"
	"maps"
	"slices"
)

// Runner executes commands in throwaway containers of one image. It
// satisfies probe.Runner.
type Runner struct {
	engine   *Engine
	image    string
	platform string
}

// NewRunner returns a Runner for image. platform may be empty.
func NewRunner(engine *Engine, image, platform string) *Runner {
	return &Runner{engine: engine, image: image, platform: platform}
}

// Run runs name with args inside a fresh container and removes it afterwards.
func (r *Runner) Run(ctx context.Context, name string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	return r.engine.Output(ctx, RunOptions{
		Image:       r.image,
		Command:     append([]string{name}, args...),
		Platform:    r.platform,
		Remove:      true,
		Interactive: true,
		Stdin:       stdin,
	})
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
