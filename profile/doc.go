// Package profile provides optional runtime profiling for solvee.
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] is a no-op. With it,
// [github.com/pkg/profile] writes the selected profile to a directory, and
// [net/http/pprof] handlers are registered on the default mux.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles", Quiet: true}
//	defer p.Start().Stop()
//
// The command line selects a mode with --pprof-mode and a directory with
// --pprof-dir, which defaults to the pprof directory under the user cache
// directory (for example ~/.cache/solvee/pprof). Analyze the output with
//
//	go tool pprof -http=: ./solvee /tmp/profiles/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
