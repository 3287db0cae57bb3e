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

package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/kata-containers/kataci/pkg/scenario"
)

// Pristine copies of the shared flag definitions, captured before any
// test runs. urfave/cli v3 flags keep parse state (hasBeenSet, value)
// between Command.Run calls, so sequential runs in one test process
// leak state; restoring these snapshots isolates each run.
var (
	origConfigFlag             = *configFlag
	origNamespaceFlag          = *namespaceFlag
	origRuntimeClassFlag       = *runtimeClassFlag
	origRuntimeClassesFlag     = *runtimeClassesFlag
	origImageFlag              = *imageFlag
	origDaemonSetFlag          = *daemonSetFlag
	origDaemonSetNamespaceFlag = *daemonSetNamespaceFlag
	origTimeoutFlag            = *timeoutFlag
	origIntervalFlag           = *intervalFlag
	origAttemptsFlag           = *attemptsFlag
	origStatusFileFlag         = *statusFileFlag
)

func resetSharedFlags() {
	*configFlag = origConfigFlag
	*namespaceFlag = origNamespaceFlag
	*runtimeClassFlag = origRuntimeClassFlag
	*runtimeClassesFlag = origRuntimeClassesFlag
	*imageFlag = origImageFlag
	*daemonSetFlag = origDaemonSetFlag
	*daemonSetNamespaceFlag = origDaemonSetNamespaceFlag
	*timeoutFlag = origTimeoutFlag
	*intervalFlag = origIntervalFlag
	*attemptsFlag = origAttemptsFlag
	*statusFileFlag = origStatusFileFlag
}

// runScenarioConfig parses args through a command carrying the shared
// flags and returns what scenarioConfig resolved.
func runScenarioConfig(t *testing.T, args ...string) (*scenario.Config, error) {
	t.Helper()
	resetSharedFlags()

	var cfg *scenario.Config
	var cfgErr error
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			configFlag,
			namespaceFlag,
			runtimeClassFlag,
			runtimeClassesFlag,
			imageFlag,
			daemonSetFlag,
			daemonSetNamespaceFlag,
			timeoutFlag,
			intervalFlag,
			attemptsFlag,
			statusFileFlag,
		},
		Action: func(_ context.Context, c *cli.Command) error {
			cfg, cfgErr = scenarioConfig(c)
			return nil
		},
	}

	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return cfg, cfgErr
}

func TestScenarioConfig_Defaults(t *testing.T) {
	cfg, err := runScenarioConfig(t)
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.Namespace)
	assert.Equal(t, "kata-qemu", cfg.RuntimeClass)
	assert.Equal(t, []string{"kata-qemu"}, cfg.RuntimeClasses)
}

func TestScenarioConfig_FlagsOverride(t *testing.T) {
	cfg, err := runScenarioConfig(t,
		"--namespace", "kata-test",
		"--runtime-class", "kata-qemu-snp",
		"--timeout", "2m",
		"--interval", "5s",
		"--attempts", "3")
	require.NoError(t, err)

	assert.Equal(t, "kata-test", cfg.Namespace)
	assert.Equal(t, "kata-qemu-snp", cfg.RuntimeClass)
	assert.Equal(t, 2*time.Minute, cfg.PodTimeout.Std())
	assert.Equal(t, 5*time.Second, cfg.PollInterval.Std())
	assert.Equal(t, 3, cfg.Attempts)
	// Derived from the overridden class, not the default.
	assert.Equal(t, []string{"kata-qemu-snp"}, cfg.RuntimeClasses)
}

func TestScenarioConfig_FlagsWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("namespace: from-file\nattempts: 7\n"), 0o600))

	cfg, err := runScenarioConfig(t, "--config", path, "--namespace", "from-flag")
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.Namespace)
	assert.Equal(t, 7, cfg.Attempts)
}

func TestScenarioConfig_InvalidValues(t *testing.T) {
	_, err := runScenarioConfig(t, "--attempts", "0")
	assert.Error(t, err)

	_, err = runScenarioConfig(t, "--image", "REGISTRY/???")
	assert.Error(t, err)
}
