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
	"fmt"
	"os"
	"time"

	"github.com/distribution/reference"
	"gopkg.in/yaml.v3"

	"github.com/kata-containers/kataci/pkg/defaults"
	apperrors "github.com/kata-containers/kataci/pkg/errors"
)

// Duration wraps time.Duration so YAML values like "5m" decode.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds all scenario parameters. Flags override file values;
// nothing is read from ambient state beyond the optional config file.
type Config struct {
	// Namespace is where the smoke-test pod is created.
	Namespace string `yaml:"namespace"`

	// RuntimeClass is the class the smoke-test pod requests and the
	// verification step compares against.
	RuntimeClass string `yaml:"runtimeClass"`

	// RuntimeClasses are the classes expected to be installed in the
	// cluster. Defaults to just RuntimeClass.
	RuntimeClasses []string `yaml:"runtimeClasses"`

	// Image is the container image for the smoke-test pod.
	Image string `yaml:"image"`

	// DaemonSetNamespace and DaemonSetName identify the installer
	// DaemonSet whose rollout is verified.
	DaemonSetNamespace string `yaml:"daemonSetNamespace"`
	DaemonSetName      string `yaml:"daemonSetName"`

	// PodTimeout and PollInterval bound the pod wait loop; Attempts is
	// the outer lifecycle retry budget.
	PodTimeout   Duration `yaml:"podTimeout"`
	PollInterval Duration `yaml:"pollInterval"`
	Attempts     int      `yaml:"attempts"`

	// StatusFile overrides the CI status side-channel destination.
	StatusFile string `yaml:"statusFile"`
}

// DefaultConfig returns the scenario defaults for a kata-deploy
// installation.
func DefaultConfig() *Config {
	return &Config{
		Namespace:          "default",
		RuntimeClass:       "kata-qemu",
		Image:              "registry.k8s.io/pause:3.10",
		DaemonSetNamespace: "kube-system",
		DaemonSetName:      "kata-deploy",
		PodTimeout:         Duration(defaults.PodTimeout),
		PollInterval:       Duration(defaults.PollInterval),
		Attempts:           defaults.LifecycleAttempts,
	}
}

// LoadConfig reads a YAML scenario file over the defaults. Unknown keys
// are rejected to catch typos early.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to parse config %s", path), err)
	}
	return cfg, nil
}

// Validate checks the configuration and fills derived defaults.
func (c *Config) Validate() error {
	if c.Namespace == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "namespace must not be empty")
	}
	if c.RuntimeClass == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "runtime class must not be empty")
	}
	if c.Attempts < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("attempts must be at least 1, got %d", c.Attempts))
	}
	if c.PodTimeout <= 0 || c.PollInterval <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "pod timeout and poll interval must be positive")
	}

	if _, err := reference.ParseNormalizedNamed(c.Image); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid container image reference", err,
			map[string]any{"image": c.Image})
	}

	if len(c.RuntimeClasses) == 0 {
		c.RuntimeClasses = []string{c.RuntimeClass}
	}
	return nil
}
