// Package env reads the environment variables that configure a test run.
// All keys are prefixed with [Prefix] and compared case-insensitive, and blank values are treated as unset.
package env
