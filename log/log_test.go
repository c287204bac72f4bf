package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestMake_Defaults(t *testing.T) {
	logger := Make(new(bytes.Buffer))

	if got := logger.Level(); got != DefaultLevel {
		t.Errorf("Level() = %v, want %v", got, DefaultLevel)
	}
	if got := logger.Format(); got != DefaultFormat {
		t.Errorf("Format() = %v, want %v", got, DefaultFormat)
	}
	if logger.caller != DefaultCaller {
		t.Errorf("caller = %v, want %v", logger.caller, DefaultCaller)
	}
}

func TestLogger_LevelFilters(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		log   func(Logger)
		want  bool
	}{
		{"trace at trace", LevelTrace, func(l Logger) { l.Trace("m") }, true},
		{"trace at debug", LevelDebug, func(l Logger) { l.Trace("m") }, false},
		{"debug at debug", LevelDebug, func(l Logger) { l.Debug("m") }, true},
		{"info at warn", LevelWarn, func(l Logger) { l.Info("m") }, false},
		{"warn at warn", LevelWarn, func(l Logger) { l.Warn("m") }, true},
		{"error at error", LevelError, func(l Logger) { l.Error("m") }, true},
		{"warn at error", LevelError, func(l Logger) { l.Warn("m") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(Make(&buf, WithLevel(tt.level), WithPretty(false)))

			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace), WithPretty(false))
	logger.TraceContext(t.Context(), "pass")

	if !strings.Contains(buf.String(), "level=TRACE") {
		t.Errorf("output %q does not name the trace level", buf.String())
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelInfo), WithFormat(FormatJSON))
	logger.Info("evaluated", slog.Int("lines", 3), slog.String("state", "ok"))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if rec["msg"] != "evaluated" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if rec["lines"] != float64(3) {
		t.Errorf("lines = %v", rec["lines"])
	}
	if rec["level"] != "INFO" {
		t.Errorf("level = %v", rec["level"])
	}
}

func TestLogger_TimeLayout(t *testing.T) {
	tests := []struct {
		layout string
		want   bool
	}{
		{"RFC3339", true},
		{"kitchen", true},
		{"none", false},
		{"  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf,
				WithLevel(LevelInfo), WithPretty(false), WithTimeLayout(tt.layout))
			logger.Info("m")

			if got := strings.Contains(buf.String(), "time="); got != tt.want {
				t.Errorf("has time = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelInfo), WithPretty(false), WithCaller(true))
	logger.Info("m")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("source does not point at the caller: %q", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		var buf bytes.Buffer

		logger := Make(&buf, WithLevel(LevelInfo), WithPretty(pretty)).
			With(slog.String("doc", "budget"))
		logger.Info("m")

		if !strings.Contains(buf.String(), "budget") {
			t.Errorf("pretty=%v: attribute missing from %q", pretty, buf.String())
		}
	}
}

func TestLogger_Wrap(t *testing.T) {
	var first, second bytes.Buffer

	logger := Make(&first, WithLevel(LevelError))
	wrapped := logger.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	wrapped.Debug("m")
	logger.Debug("m")

	if first.Len() != 0 {
		t.Errorf("original logger was reconfigured: %q", first.String())
	}
	if second.Len() == 0 {
		t.Error("wrapped logger wrote nothing")
	}
}

func TestLogger_Zero(t *testing.T) {
	var logger Logger

	logger.Error("discarded")
	logger.With(slog.Int("n", 1)).Info("discarded")

	if logger.Enabled(context.Background(), LevelError) {
		t.Error("zero logger reports enabled")
	}
}

func TestPretty_Colorizes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelInfo), WithPretty(true), WithTimeLayout("none"))
	logger.Warn("careful", slog.Bool("ok", false), slog.Float64("x", 1.5))

	out := buf.String()
	for _, want := range []string{colorYellow + "WARN", colorRed + "false", "1.5", "careful"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestPackageLogger(t *testing.T) {
	saved := defaultLog
	t.Cleanup(func() { defaultLog = saved })

	var buf bytes.Buffer
	defaultLog = Make(&buf)
	Config(WithLevel(LevelDebug), WithFormat(FormatJSON))

	tests := []struct {
		fn    func(string, ...slog.Attr)
		level string
	}{
		{Debug, "DEBUG"},
		{Info, "INFO"},
		{Warn, "WARN"},
		{Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			out := buf.String()
			if !strings.Contains(out, `"level":"`+tt.level+`"`) {
				t.Errorf("output %q missing level %s", out, tt.level)
			}
			if !strings.Contains(out, `"key":"value"`) {
				t.Errorf("output %q missing attribute", out)
			}
		})
	}
}
