// Package retry implements bounded retry with deterministic backoff for
// external cluster operations.
//
// Transient infrastructure flakiness (a momentarily unreachable API
// endpoint, a slow scheduler) is absorbed here and never surfaces to
// callers as a hard failure; only exhaustion of the attempt budget
// escapes, as an *ExhaustedError wrapping the last failure.
//
// Delays follow k8s.io/apimachinery wait.Backoff semantics: a fixed
// delay (factor 1) for ordinary operations and a doubling delay for
// cluster health checks. No jitter is applied; concurrent actors on the
// same resources are not expected in CI runs.
//
// The invoker does not distinguish idempotent from mutating operations.
// Callers retrying mutating calls (apply, create) own the idempotency
// contract — kataci satisfies it with uniquely named test pods.
package retry
