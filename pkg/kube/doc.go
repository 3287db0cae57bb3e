// Package kube provides client-go based cluster checks for kataci.
//
// It carries a singleton Kubernetes client with automatic kubeconfig
// discovery (KUBECONFIG, ~/.kube/config, in-cluster service account)
// plus the pre-flight verifications the scenario driver runs before the
// pod smoke test: node readiness, kata-deploy DaemonSet rollout, and
// RuntimeClass presence.
//
// These checks read cluster state through the typed API rather than the
// command executor; only the lifecycle core is constrained to the
// executor boundary.
package kube
