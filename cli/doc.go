// Package cli contains the command line interface for solvee.
//
// # Usage
//
// Without a command, solvee evaluates its arguments as documents:
//
//	solvee budget.calc
//	echo '6 * 7 == answer' | solvee -o json
//
// Commands:
//
//   - eval: print the result of every line (default)
//   - fmt: print lines in canonical form, or as expression trees
//   - repl: evaluate lines at an interactive prompt
//   - pad: edit a document with results beside each line
//   - init: write the configuration file, or the default theme
//
// # Configuration
//
// Flag defaults are read from the "config" table of config.toml in the
// user configuration directory, and from config.toml.json beside it. Keys
// are flag names with '-' or '_' separators. Flags given on the command line
// take precedence. Run "solvee init" to write the current flags.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (text, json)
//   - --log-time-layout: timestamp layout
//   - --[no-]log-caller: include caller information
//   - --[no-]log-pretty: colorize output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag
// (go build -tags pprof):
//
//   - --pprof-mode: enable profiling (cpu, heap, allocs, ...)
//   - --pprof-dir: profile output directory
package cli
