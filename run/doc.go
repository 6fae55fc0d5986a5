// Package run executes alias bodies.
//
// A [Runner] substitutes positional arguments into a body, splits it into
// segments, and then handles each segment in order: inline substitutions
// are resolved, the result is classified into a directive, and the
// [Dispatcher] applies it. A segment is only expanded once every earlier
// directive has been applied, so
//
//	@pushd /tmp
//	echo $(pwd)
//
// prints /tmp. The first failure stops the run; nothing is rolled back.
//
// Process state is reached only through a [Process]. [OS] changes the real
// working directory and environment; [Sandbox] keeps both in memory.
package run
