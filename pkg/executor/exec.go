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

package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"
)

// CLI executes commands with os/exec, capturing combined output.
type CLI struct{}

// NewCLI creates a process-backed Executor.
func NewCLI() *CLI {
	return &CLI{}
}

// Run executes the named command with the given arguments.
func (c *CLI) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return c.RunInput(ctx, nil, name, args...)
}

// RunInput executes the named command feeding stdin from the given reader.
func (c *CLI) RunInput(ctx context.Context, stdin io.Reader, name string, args ...string) (Result, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return Result{}, fmt.Errorf("%s not found in PATH: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}

	start := time.Now()
	output, err := cmd.CombinedOutput()
	res := Result{Output: string(output)}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Command never ran or was killed by context cancellation.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			return res, fmt.Errorf("failed to execute %s: %w", name, err)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	slog.Debug("command executed",
		slog.String("command", name),
		slog.Any("args", args),
		slog.Int("exitCode", res.ExitCode),
		slog.Duration("duration", time.Since(start)))

	return res, nil
}
