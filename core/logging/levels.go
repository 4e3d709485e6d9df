package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix names the environment variables read when a package logger is first created.
// BERTLV_LOG applies to every package; BERTLV_LOG_<pkg> overrides it for one package.
const EnvPrefix = "BERTLV_LOG"

var (
	levelsLock sync.Mutex
	levels     = map[string]zap.AtomicLevel{}
)

// ParseLevel interprets a level name by its first letter, case-insensitively.
// V or D is debug, W is warn, E is error, F or N suppresses everything but panics.
// Anything else, including the empty string, is info.
func ParseLevel(s string) zapcore.Level {
	if s == "" {
		return zapcore.InfoLevel
	}
	switch s[0] | 0x20 {
	case 'v', 'd':
		return zapcore.DebugLevel
	case 'w':
		return zapcore.WarnLevel
	case 'e':
		return zapcore.ErrorLevel
	case 'f', 'n':
		return zapcore.DPanicLevel
	}
	return zapcore.InfoLevel
}

// Level returns the level shared by every logger of a package.
func Level(pkg string) zap.AtomicLevel {
	levelsLock.Lock()
	defer levelsLock.Unlock()
	return levelLocked(pkg)
}

func levelLocked(pkg string) zap.AtomicLevel {
	al, ok := levels[pkg]
	if !ok {
		s, found := os.LookupEnv(EnvPrefix + "_" + pkg)
		if !found {
			s = os.Getenv(EnvPrefix)
		}
		al = zap.NewAtomicLevelAt(ParseLevel(s))
		levels[pkg] = al
	}
	return al
}

// ApplyAssignments changes package levels from "pkg=L" assignments, as given to the --log flag.
// A bare "L" changes every package that has a logger.
func ApplyAssignments(assignments ...string) error {
	levelsLock.Lock()
	defer levelsLock.Unlock()

	for _, a := range assignments {
		pkg, lvl, ok := strings.Cut(a, "=")
		switch {
		case !ok:
			for _, al := range levels {
				al.SetLevel(ParseLevel(a))
			}
		case pkg == "":
			return fmt.Errorf("log level assignment %q lacks package name", a)
		default:
			levelLocked(pkg).SetLevel(ParseLevel(lvl))
		}
	}
	return nil
}
