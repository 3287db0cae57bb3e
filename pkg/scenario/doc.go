// Package scenario composes cluster checks and the pod lifecycle poller
// into named test scenarios with a single pass/fail verdict.
//
// A scenario is an ordered list of Steps (cluster-health,
// daemonset-ready, runtime-classes, pod-lifecycle, verify-runtime) run
// strictly sequentially by the Driver: no parallelism, and step N+1
// never starts before step N's outcome is known. The first failure
// stops the scenario, dumps a diagnostic snapshot of the test pod, and
// emits tests_passed=false through pkg/ci; Finally steps (cleanup)
// always run regardless of outcome.
//
// Scenario parameters come from an optional YAML config file overlaid
// with CLI flags; see Config.
package scenario
