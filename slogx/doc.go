// Package slogx sets up the [slog.Logger] used for test run events.
package slogx
