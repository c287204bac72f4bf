package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/solvee/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelInfo),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Info("document evaluated", slog.Int("lines", 4))
	logger.Debug("not written")
	// Output:
	// level=INFO msg="document evaluated" lines=4
}

func ExampleLogger_With() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelWarn),
		log.WithPretty(false),
		log.WithTimeLayout("none")).
		With(slog.String("source", "budget.txt"))

	logger.Warn("line failed", slog.Int("line", 2))
	// Output:
	// level=WARN msg="line failed" source=budget.txt line=2
}
