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
	"sync"
)

// Script is a scripted Executor for tests. Each call consumes the next
// queued Result; once the queue is exhausted the last Result repeats.
// Every invocation is recorded so tests can assert exact call counts
// and argument sequences.
type Script struct {
	mu      sync.Mutex
	results []Result
	err     error
	calls   []string
	stdins  []string
}

// NewScript creates a Script that replays the given results in order.
func NewScript(results ...Result) *Script {
	return &Script{results: results}
}

// Fail makes every subsequent invocation return err instead of a Result.
func (s *Script) Fail(err error) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	return s
}

// Run implements Executor.
func (s *Script) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return s.RunInput(ctx, nil, name, args...)
}

// RunInput implements Executor.
func (s *Script) RunInput(ctx context.Context, stdin io.Reader, name string, args ...string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, strings.Join(append([]string{name}, args...), " "))

	var in string
	if stdin != nil {
		raw, _ := io.ReadAll(stdin)
		in = string(raw)
	}
	s.stdins = append(s.stdins, in)

	if s.err != nil {
		return Result{}, s.err
	}

	idx := len(s.calls) - 1
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	if idx < 0 {
		return Result{}, nil
	}
	return s.results[idx], nil
}

// Calls returns the recorded invocations as "name arg1 arg2 ..." strings.
func (s *Script) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// CallCount returns how many times the executor was invoked.
func (s *Script) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Stdin returns the stdin content recorded for call i, or empty.
func (s *Script) Stdin(i int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.stdins) {
		return ""
	}
	return s.stdins[i]
}
