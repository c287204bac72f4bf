// Package log is a small leveled logging layer over [log/slog].
//
// A [Logger] is configured once, at creation, with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339"))
//
// Every logging method takes typed [slog.Attr] values rather than
// alternating key/value arguments:
//
//	logger.Info("document evaluated", slog.Int("lines", n))
//
// The package-level functions ([Info], [Debug], ...) write through a default
// logger on standard error, reconfigured with [Config]. Methods without a
// context argument use [DefaultContextProvider].
//
// Levels are [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and
// [LevelError]. The zero [Logger] discards all records.
package log
