// Package profile provides optional runtime profiling through
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof ./...
//	aka --pprof-mode cpu --pprof-dir ./profiles run build
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op.
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
