// Package kubectl implements the kubectl-backed resource client for the
// lifecycle poller.
//
// PodClient issues create (apply with a generated manifest on stdin),
// state query (jsonpath phase), delete and describe calls through the
// executor boundary. It is the single place where kubectl output text
// is interpreted: parsePhase maps the phase string to a typed
// lifecycle.ObservedState, and Info decodes the full pod JSON into the
// typed corev1.Pod to read back the runtime class and node fields for
// verification.
package kubectl
