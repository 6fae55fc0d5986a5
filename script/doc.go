// Package script evaluates embedded script source with expr-lang/expr.
//
// Script blocks and inline <%= ... %> expressions are compiled against an
// environment that exposes the invocation and the current process state:
//
//	ARGV                      user arguments ([]string)
//	NAME                      invoked alias name
//	env                       process environment (map[string]string)
//	cwd()                     current working directory
//	print(v...)               write values separated by spaces
//	puts(v...)                write each value on its own line
//	cmd(list)                 render list as a command line
//	cmdDeep(list)             like cmd, flattening nested lists
//	mung.prefix(s, p...)      prepend path list items to s
//	mung.prefixdir(s, p...)   like mung.prefix, keeping only directories
//
// Results are rendered for the shell by [Display].
package script
