package profile

// Profiler describes a profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty Mode disables profiling.
	Mode string
	// Path is the directory profiles are written to.
	Path string
	// Quiet suppresses the profiler's own log output.
	Quiet bool
}

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Start starts profiling and returns the means to stop it.
//
// If the program was built without the pprof tag, or Mode is empty or
// unknown, Start returns a no-op. Both Start and Stop are always safe to
// call.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
