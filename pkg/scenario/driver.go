// Copyright (c) 2025, Kata Containers community. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scenario

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/kata-containers/kataci/pkg/ci"
)

// Driver sequences scenario steps and reports a single verdict to the
// CI pipeline. Steps run strictly in order; the first failure stops the
// scenario, dumps diagnostics for triage and emits a failed signal.
type Driver struct {
	// Name identifies the scenario in logs and the status channel.
	Name string

	// Steps run in order until the first failure.
	Steps []Step

	// Finally steps always run after the scenario, pass or fail, even
	// when the context was canceled. Their errors are logged, never
	// propagated.
	Finally []Step

	// Signal is the CI status side-channel. Optional.
	Signal *ci.Writer

	// Diagnostics produces a triage snapshot on failure. Optional.
	Diagnostics func(ctx context.Context) string

	// Out receives the diagnostics dump; defaults to stderr.
	Out io.Writer
}

// Run executes the scenario. The returned error is the first step
// failure, or nil when every step passed.
func (d *Driver) Run(ctx context.Context) error {
	start := time.Now()
	slog.Info("scenario starting", slog.String("scenario", d.Name), slog.Int("steps", len(d.Steps)))

	for _, step := range d.Steps {
		slog.Info("step starting", slog.String("step", step.Name()))

		if err := step.Run(ctx); err != nil {
			slog.Error("step failed",
				slog.String("scenario", d.Name),
				slog.String("step", step.Name()),
				slog.Any("error", err))
			d.dumpDiagnostics(ctx)
			d.runFinally(ctx)
			d.signal(false)
			return fmt.Errorf("scenario %s failed at step %s: %w", d.Name, step.Name(), err)
		}

		slog.Info("step passed", slog.String("step", step.Name()))
	}

	d.runFinally(ctx)
	d.signal(true)
	slog.Info("scenario passed",
		slog.String("scenario", d.Name),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// dumpDiagnostics prints the describe-equivalent snapshot so a human
// can triage without re-running.
func (d *Driver) dumpDiagnostics(ctx context.Context) {
	if d.Diagnostics == nil {
		return
	}
	out := d.Out
	if out == nil {
		out = os.Stderr
	}
	// Diagnostics must still work when the scenario context is gone.
	fmt.Fprintln(out, d.Diagnostics(context.WithoutCancel(ctx)))
}

func (d *Driver) runFinally(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for _, step := range d.Finally {
		if err := step.Run(ctx); err != nil {
			slog.Warn("final step failed",
				slog.String("step", step.Name()),
				slog.Any("error", err))
		}
	}
}

func (d *Driver) signal(passed bool) {
	if d.Signal == nil {
		return
	}
	if err := d.Signal.Set("scenario", d.Name); err != nil {
		slog.Warn("failed to emit scenario signal", slog.Any("error", err))
	}
	if err := d.Signal.Status(passed); err != nil {
		slog.Warn("failed to emit status signal", slog.Any("error", err))
	}
}
