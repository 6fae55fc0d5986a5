// Package cmd implements the aka subcommands.
//
// Commands receive their shared settings through the context: the parsed
// [kong.Context] via [WithContext] and the [Globals] via [WithGlobals].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
