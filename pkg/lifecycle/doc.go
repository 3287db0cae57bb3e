// Package lifecycle drives the create → await-state → classify →
// cleanup machine for a remote test resource whose state can only be
// observed by repeated queries.
//
// # State machine
//
// A single cycle runs Uncreated → Creating → AwaitingState → {Ready |
// Failed | TimedOut} → CleanedUp:
//
//   - creation goes through pkg/retry; if it still fails, the cycle is
//     Failed without entering AwaitingState
//   - the poll loop issues Timeout/Interval state queries; Running or
//     Succeeded → Ready (polling stops immediately), Failed → Failed
//     (failure is durable, the remaining budget is abandoned), NotFound
//     and Unknown are non-terminal
//   - cleanup is best effort and never affects the outcome
//
// The whole cycle is retried up to Config.Attempts times on Failed or
// TimedOut, with a delete issued before every fresh create. Ready
// short-circuits.
//
// Polling is single-threaded and blocking; the only suspension is the
// sleep between polls and between cycles.
package lifecycle
