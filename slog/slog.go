// Package slog provides logging decorators for the sitepdf service
// interfaces using the standard log/slog package.
package slog
