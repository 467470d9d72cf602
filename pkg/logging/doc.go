// Package logging builds the log/slog loggers used across seedmock.
//
// Components accept a *slog.Logger through a SetLogger method and default
// to Nop, so library use stays silent unless the caller opts in:
//
//	logger := logging.New(logging.Config{Level: logging.LevelDebug, Format: logging.FormatJSON})
//	store.SetLogger(logging.Component(logger, "snapshot"))
//
// Levels are debug, info, warn and error. Formats are text and json.
package logging
