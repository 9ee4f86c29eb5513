package match

import (
	"log/slog"
	"os"
)

// logger is used only for programmer-error diagnostics and Market routing
// events. The matching walk itself never logs.
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger overrides the package logger, e.g. to route diagnostics
// through an application's own slog handler.
func SetLogger(l *slog.Logger) {
	logger = l
}
