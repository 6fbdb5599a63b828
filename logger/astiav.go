package logger

import (
	"github.com/asticode/go-astiav"
)

// LevelToAstiav converts a go-belt logging level into the libav one.
func LevelToAstiav(level Level) astiav.LogLevel {
	switch level {
	case LevelPanic:
		return astiav.LogLevelPanic
	case LevelFatal:
		return astiav.LogLevelFatal
	case LevelError:
		return astiav.LogLevelError
	case LevelWarning:
		return astiav.LogLevelWarning
	case LevelInfo:
		return astiav.LogLevelInfo
	case LevelDebug:
		return astiav.LogLevelDebug
	case LevelTrace:
		return astiav.LogLevelDebug
	}
	return astiav.LogLevelError
}

// LevelFromAstiav converts a libav logging level into the go-belt one.
func LevelFromAstiav(level astiav.LogLevel) Level {
	switch level {
	case astiav.LogLevelPanic:
		return LevelPanic
	case astiav.LogLevelFatal:
		return LevelFatal
	case astiav.LogLevelError:
		return LevelError
	case astiav.LogLevelWarning:
		return LevelWarning
	case astiav.LogLevelInfo:
		return LevelInfo
	case astiav.LogLevelVerbose, astiav.LogLevelDebug:
		return LevelDebug
	}
	return LevelDebug
}
