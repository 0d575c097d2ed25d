package tilegrid

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger installs the logger used for tilegrid diagnostics. By default the
// package logs nothing. Pass nil to restore the silent default.
//
// Levels used:
//   - [slog.LevelDebug]: hooks that subclasses are expected to override
//   - [slog.LevelWarn]: soft failures (missing texture, atlas allocation,
//     shader compilation, image decode)
//
// Example:
//
//	tilegrid.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the logger currently used by tilegrid.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
