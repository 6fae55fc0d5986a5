// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured with functional options when created with [Make]
// or derived with [Logger.Wrap]:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true))
//
// The package-level functions write through a default logger that sends
// text at [LevelWarn] to stderr, leaving stdout to the commands being run.
// [Config] adjusts it:
//
//	log.Config(log.WithLevel(log.LevelTrace), log.WithPretty(true))
//	log.DebugContext(ctx, "dispatch", slog.String("directive", d.String()))
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and reports as "TRACE".
//
// # Pretty output
//
// [WithPretty] styles text output with lipgloss for a terminal. Values that
// span several lines, such as errors carrying a highlighted snippet, are
// printed indented beneath the record.
package log
