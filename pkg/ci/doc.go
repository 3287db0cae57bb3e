// Package ci emits machine-readable status signals to the invoking CI
// pipeline.
//
// The contract toward the surrounding pipeline is deliberately small: a
// line-oriented key=value side-channel (GitHub Actions step output file
// or stdout) carrying tests_passed=true|false plus scenario metadata,
// and the process exit code.
package ci
