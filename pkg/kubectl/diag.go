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

package kubectl

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Diagnostics gathers a triage snapshot of the pod: describe output,
// namespace events scoped to the pod, and recent container logs. The
// three queries run concurrently; individual failures are reported
// inline rather than aborting the snapshot.
func (c *PodClient) Diagnostics(ctx context.Context) string {
	var describe, events, logs string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := c.Describe(gctx)
		if err != nil {
			out = fmt.Sprintf("describe unavailable: %v", err)
		}
		describe = out
		return nil
	})
	g.Go(func() error {
		res, err := c.exec.Run(gctx, c.binary,
			"get", "events",
			"-n", c.spec.Namespace,
			"--field-selector", "involvedObject.name="+c.spec.Name,
			"--sort-by", ".lastTimestamp")
		if err != nil {
			events = fmt.Sprintf("events unavailable: %v", err)
			return nil
		}
		events = res.Output
		return nil
	})
	g.Go(func() error {
		res, err := c.exec.Run(gctx, c.binary,
			"logs", c.spec.Name,
			"-n", c.spec.Namespace,
			"--tail", "50")
		if err != nil || !res.Success() {
			logs = "logs unavailable"
			return nil
		}
		logs = res.Output
		return nil
	})
	_ = g.Wait()

	var b strings.Builder
	section := func(title, body string) {
		b.WriteString("=== " + title + " ===\n")
		b.WriteString(strings.TrimRight(body, "\n"))
		b.WriteString("\n")
	}
	section(fmt.Sprintf("describe pod %s/%s", c.spec.Namespace, c.spec.Name), describe)
	section("events", events)
	section("logs (last 50 lines)", logs)
	return b.String()
}
