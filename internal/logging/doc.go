// Package logging provides slog-based structured logging for reelcheck.
// It exposes a console handler for interactive use, a JSON handler for
// machine consumption, typed attribute constructors, and standardized
// field keys so evaluation events stay greppable across components.
package logging
