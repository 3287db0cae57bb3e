// Package executor abstracts external command execution for kataci.
//
// The Executor interface is the only I/O boundary between the lifecycle
// core and the cluster: kubectl invocations go through it, and tests
// replace it with the scripted fake (Script) to drive the poller with
// canned results.
//
// A Result carries the combined stdout/stderr text and the exit code.
// Invocation errors (missing binary, canceled context) are distinct
// from non-zero exits: the former surface as Go errors, the latter as
// Result.ExitCode != 0.
//
// Note: the executor does not distinguish idempotent from mutating
// commands. Callers wrapping mutating operations in retries must ensure
// repeats are safe, e.g. by using uniquely named resources.
package executor
