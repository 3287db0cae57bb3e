// Package errors provides structured error types for kataci.
//
// Errors carry an ErrorCode classification so callers (and the CI
// pipeline reading logs) can distinguish retry exhaustion, terminal
// resource failures, poll timeouts, and verification mismatches without
// parsing message text. StructuredError supports errors.Is/As via
// Unwrap, and optional key/value context for triage.
//
// Propagation policy: transient infrastructure failures are absorbed by
// pkg/retry and never surface with a code; RETRY_EXHAUSTED,
// TERMINAL_FAILURE and POLL_TIMEOUT escape the lifecycle poller only
// after outer retry is exhausted; VERIFICATION_MISMATCH and
// INVALID_REQUEST are always fatal.
package errors
