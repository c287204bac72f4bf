package log

import (
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"Info", LevelInfo},
		{" warn ", LevelWarn},
		{"error", LevelError},
		{"info+2", LevelInfo + 2},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevel_StringRoundTrip(t *testing.T) {
	for name := range Levels() {
		if got := ParseLevel(name).String(); got != name {
			t.Errorf("ParseLevel(%q).String() = %q", name, got)
		}
	}
}

func TestFormats(t *testing.T) {
	got := slices.Collect(Formats())
	if !slices.Equal(got, []string{"text", "json"}) {
		t.Errorf("Formats() = %v", got)
	}

	for _, name := range got {
		if ParseFormat(name).String() != name {
			t.Errorf("ParseFormat(%q) does not round trip", name)
		}
	}

	if ParseFormat("yaml") != DefaultFormat {
		t.Error("unknown format does not fall back to the default")
	}
}

func TestOptions(t *testing.T) {
	c := apply(config{},
		WithLevel(LevelError),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(false),
		nil,
	)

	if c.level != LevelError || c.format != FormatJSON || !c.caller || c.pretty {
		t.Errorf("options not applied: %+v", c)
	}

	if c = WithOutput(nil)(c); c.output == nil {
		t.Error("WithOutput(nil) left a nil writer")
	}
}

func TestMakeFormatTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"rfc3339", "2024-03-09T15:04:05Z"},
		{"RFC-3339", "2024-03-09T15:04:05Z"},
		{"Kitchen", "3:04PM"},
		{"2006", "2024"},
		{"none", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := makeFormatTime(tt.layout)(ts); got != tt.want {
				t.Errorf("format = %q, want %q", got, tt.want)
			}
		})
	}
}
