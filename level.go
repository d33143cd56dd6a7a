/*
Licensed under the Apache License, Version 2.0 (the "License"); you may
not use this file except in compliance with the License. You may obtain
a copy of the License at

http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
License for the specific language governing permissions and limitations
under the License.
*/

package daiquiri

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
)

// Level is a logging severity. The zero value means "not set" so that an
// output without an explicit minimum inherits the registry level.
type Level int

const (
	LevelNotSet   Level = 0
	LevelDebug    Level = 10
	LevelInfo     Level = 20
	LevelWarning  Level = 30
	LevelError    Level = 40
	LevelCritical Level = 50
)

var levelNames = map[Level]string{
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarning:  "WARNING",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel converts a severity name into a Level. Matching is
// case-insensitive and "warn" is accepted as an alias for "warning".
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "critical":
		return LevelCritical, nil
	}
	return LevelNotSet, errors.Errorf("unknown log level %q", name)
}

func (l Level) MarshalText() ([]byte, error) {
	if name, ok := levelNames[l]; ok {
		return []byte(strings.ToLower(name)), nil
	}
	return nil, errors.Errorf("unknown log level %d", int(l))
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// slogLevel maps a Level onto the slog scale for the slog bridge. Critical
// has no slog constant and maps above error.
func (l Level) slogLevel() slog.Level {
	switch {
	case l <= LevelDebug:
		return slog.LevelDebug
	case l <= LevelInfo:
		return slog.LevelInfo
	case l <= LevelWarning:
		return slog.LevelWarn
	case l <= LevelError:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

func levelFromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelInfo:
		return LevelDebug
	case l < slog.LevelWarn:
		return LevelInfo
	case l < slog.LevelError:
		return LevelWarning
	case l < slog.LevelError+4:
		return LevelError
	default:
		return LevelCritical
	}
}

// syslogPriority returns the syslog.h numeric severity for a level. The
// values are the packed 3-bit constants from syslog.h and are stable across
// platforms. Unknown levels map to debug.
func (l Level) syslogPriority() int {
	switch l {
	case LevelCritical:
		return 2
	case LevelError:
		return 3
	case LevelWarning:
		return 4
	case LevelInfo:
		return 6
	default:
		return 7
	}
}
