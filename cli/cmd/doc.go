// Package cmd implements the solvee subcommands.
//
// Each command is a kong command struct with a Run(context.Context) method.
// Commands read documents from the sources named on their command line, or
// from the global --source flag stored in the context by [WithSourceFiles],
// or from stdin. Output goes to the writer stored by [WithOutput], which
// defaults to stdout.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"

	// PrecisionIdentifier is the kong variable identifier containing the
	// default number of fractional digits in results.
	PrecisionIdentifier = "precision"
)
