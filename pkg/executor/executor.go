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
	"io"
	"strings"
)

// Result captures the outcome of a single external command invocation:
// the combined stdout/stderr text and the process exit code.
type Result struct {
	Output   string
	ExitCode int
}

// Success reports whether the command exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// TrimmedOutput returns the captured output without surrounding whitespace.
func (r Result) TrimmedOutput() string {
	return strings.TrimSpace(r.Output)
}

// Executor runs external cluster-management commands. It is the sole I/O
// boundary of the lifecycle core; all remote state is observed and mutated
// through it. Implementations must be safe for sequential reuse.
//
// Run returns a non-nil error only when the command could not be invoked
// at all (binary missing, context canceled). A command that ran and exited
// non-zero is reported through Result.ExitCode with a nil error.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
	RunInput(ctx context.Context, stdin io.Reader, name string, args ...string) (Result, error)
}
