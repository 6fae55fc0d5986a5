// Package cli contains the command line interface for aka.
//
// # Usage
//
//	aka [flags] NAME [ARGS...]        run an alias (same as "aka run")
//	aka expand [-f text|json|yaml] NAME [ARGS...]
//	aka list [-n]
//	aka init [--force]
//
// When the program is started under any name other than "aka", typically
// through a link named after an alias, it runs the alias of that name with
// every argument passed through unchanged. See [Args].
//
// # Configuration
//
// Flag defaults are read from config.yaml in the configuration directory.
// Nested keys are joined with hyphens to form flag names:
//
//	log:
//	  level: debug
//	shell: virtual
//	dir: ~/aliases
//
// Command-line flags override config file values. "aka init" writes the
// current values in this form.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Style text output; defaults to on when stderr is a terminal
//
// Logs are written to stderr.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag
// ("go build -tags pprof"):
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
