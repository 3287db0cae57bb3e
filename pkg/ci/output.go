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

package ci

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OutputEnv is the environment variable naming the status file, as set
// by GitHub Actions for step outputs.
const OutputEnv = "GITHUB_OUTPUT"

// Writer emits key=value status lines to the CI side-channel: a status
// file when one is configured (explicitly or via GITHUB_OUTPUT), stdout
// otherwise.
type Writer struct {
	path   string
	stdout io.Writer
}

// NewWriter creates a Writer. An empty path falls back to the
// GITHUB_OUTPUT environment variable; if that is unset too, lines go to
// stdout.
func NewWriter(path string) *Writer {
	if path == "" {
		path = os.Getenv(OutputEnv)
	}
	return &Writer{path: path, stdout: os.Stdout}
}

// Set appends a key=value line to the status channel. Keys must not be
// empty; values must not contain newlines (the side-channel is
// line-oriented).
func (w *Writer) Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("status key must not be empty")
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("status value for %q must not contain newlines", key)
	}

	line := key + "=" + value + "\n"
	if w.path == "" {
		_, err := io.WriteString(w.stdout, line)
		return err
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open status file %s: %w", w.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to write status file %s: %w", w.path, err)
	}
	return nil
}

// Status emits the scenario verdict as tests_passed=true|false.
func (w *Writer) Status(passed bool) error {
	return w.Set("tests_passed", strconv.FormatBool(passed))
}
