// Package log exposes the logger contract of the planboard SDK.
//
// Clients log nothing unless a [Logger] is set in lib.Config. Any logger
// with printf style methods can be adapted, for example wrapping a
// logrus entry:
//
//	type boardLogger struct{ e *logrus.Entry }
//
//	func (l boardLogger) Debugf(format string, args ...any) { l.e.Debugf(format, args...) }
//	func (l boardLogger) WithValues(kv map[string]any) log.Logger {
//		return boardLogger{e: l.e.WithFields(kv)}
//	}
//	// ... remaining methods
package log

import "github.com/slok/planboard/internal/log"

// Logger is the logger used by the SDK services, every service tags its
// entries with a "svc" value.
type Logger = log.Logger

// Kv are structured key-value pairs.
type Kv = log.Kv

// Noop discards everything.
var Noop = log.Noop
