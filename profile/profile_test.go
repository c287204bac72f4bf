package profile

import (
	"slices"
	"testing"
)

func TestProfilerStartDisabled(t *testing.T) {
	// An empty mode never starts a profiler, with or without the pprof tag.
	Profiler{Path: t.TempDir()}.Start().Stop()
}

func TestProfilerStartUnknownMode(t *testing.T) {
	p := Profiler{Mode: "bogus", Path: t.TempDir(), Quiet: true}

	if _, ok := p.Start().(ignore); !ok {
		t.Error("unknown mode started a profiler")
	}
}

func TestModesSorted(t *testing.T) {
	modes := Modes()

	if !slices.IsSorted(modes) {
		t.Errorf("Modes() = %v, not sorted", modes)
	}

	if slices.Contains(modes, "") {
		t.Error("Modes() contains an empty mode")
	}
}
