// Package defaults centralizes timeout, interval and retry-budget
// constants used across kataci. Keeping them in one place prevents
// hidden defaults baked into call sites; every value can be overridden
// through flags or the scenario config file.
package defaults
