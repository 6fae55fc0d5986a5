// Package lang turns an alias body into directives.
//
// Nothing in this package has side effects: command and expression
// substitutions are resolved through caller-supplied [Resolver] functions,
// and directives are executed elsewhere.
//
// # Pipeline
//
// A body is processed in four stages:
//
//   - [SubstituteArgs] replaces positional tokens ($0, $1..$9, $#, "$@", "$+")
//     with invocation arguments in a single pass.
//   - [Split] divides the result into [ShellLine] and [ScriptBlock] segments.
//   - [Expand] validates delimiter nesting of a shell line with
//     [ValidateNesting] and resolves $(...) and <%= ... %> substitutions,
//     innermost first.
//   - [Classify] and [ParseDirective] map each segment to a [Directive].
//
// Callers expand a shell line only when it is about to run, so that
// substitutions observe the effects of earlier directives.
//
// # Syntax
//
//	# comment
//	@set KEY=VALUE
//	@pushd PATH
//	@popd
//	echo $(git rev-parse --short HEAD) <%= len(ARGV) %>
//	```expr
//	puts("script block")
//	```
//
// # Errors
//
// Every error produced here is an [*Error]. Errors that refer to a location
// carry the text they refer to and the offending [Range] values, rendered by
// [Highlight] beneath the message:
//
//	mismatched delimiters
//	  1 | echo $(<%=)%>
//	    |      ^^^^^^
package lang
