package logging

// Level is an ordered verbosity threshold. A Logger emits a message only if
// its current threshold is at least as verbose as the message's level.
type Level int32

const (
	// LevelDisabled silences a Logger entirely, including Warn and Error.
	LevelDisabled Level = iota
	// LevelError permits only Error.
	LevelError
	// LevelWarn permits Error and Warn.
	LevelWarn
	// LevelInfo additionally permits Print/Printf/Println — this is the
	// default threshold for RootLogger.
	LevelInfo
	// LevelDebug additionally permits Debug/Debugf/Debugln.
	LevelDebug
	// LevelTrace additionally permits Trace/Tracef, reserved for output too
	// noisy to enable by default even during debugging.
	LevelTrace
)

// defaultLevel is RootLogger's threshold when MANDERROW_LOG_LEVEL is unset
// or unrecognized.
const defaultLevel = LevelInfo

// ParseLevel converts a configuration string — from the MANDERROW_LOG_LEVEL
// environment variable or a settings file's log_level field — into a
// Level. Unlike a silent default-on-failure, the caller is told whether the
// name was recognized, so a typo in configuration can be reported instead
// of quietly running at the wrong verbosity.
func ParseLevel(name string) (Level, bool) {
	switch name {
	case "disabled":
		return LevelDisabled, true
	case "error":
		return LevelError, true
	case "warn":
		return LevelWarn, true
	case "info":
		return LevelInfo, true
	case "debug":
		return LevelDebug, true
	case "trace":
		return LevelTrace, true
	default:
		return LevelDisabled, false
	}
}

// String renders a Level for diagnostics and for round-tripping through
// configuration.
func (l Level) String() string {
	switch l {
	case LevelDisabled:
		return "disabled"
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// admits reports whether a message logged at level should be emitted by a
// Logger whose threshold is l.
func (l Level) admits(level Level) bool {
	return l >= level
}
