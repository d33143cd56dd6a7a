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
	"bytes"
	"fmt"
	"sync"
)

// Formatter renders a record into the bytes an output writes, including the
// trailing newline. The tty flag reports whether the destination is an
// interactive terminal; formatters must not decorate output otherwise.
// Implementations must not modify the record.
type Formatter interface {
	Format(r *Record, tty bool) []byte
}

// DefaultTimeFormat is the timestamp layout of the default text formatter.
const DefaultTimeFormat = "2006-01-02 15:04:05.000"

const colorStop = "\033[0m"

// Color is one palette entry, an ANSI color index optionally bolded.
type Color struct {
	Bold  bool
	Index int
}

func (c Color) escape() string {
	mod := 0
	if c.Bold {
		mod = 1
	}
	return fmt.Sprintf("\033[%02d;%dm", mod, 30+c.Index)
}

// Palette maps the five standard severities to terminal colors.
type Palette struct {
	Debug    Color
	Info     Color
	Warning  Color
	Error    Color
	Critical Color
}

// DefaultPalette is green debug, cyan info, bold yellow warning and bold red
// for error and critical.
var DefaultPalette = Palette{
	Debug:    Color{Index: 2},
	Info:     Color{Index: 6},
	Warning:  Color{Bold: true, Index: 3},
	Error:    Color{Bold: true, Index: 1},
	Critical: Color{Bold: true, Index: 1},
}

// TextFormatter renders records as colored, human-readable lines:
//
//	<time> [<pid>] <color><LEVEL> <name>[<extras>]: <message><color-stop>
//
// The zero value is ready to use and matches the default output format.
type TextFormatter struct {
	// TimeFormat overrides DefaultTimeFormat when non-empty.
	TimeFormat string

	// Palette overrides DefaultPalette when non-nil.
	Palette *Palette

	// DisableColor suppresses decoration even on a terminal.
	DisableColor bool

	// Keywords lists field keys excluded from the extras suffix, for
	// fields a wrapping formatter renders elsewhere.
	Keywords map[string]struct{}

	// ExtrasPrefix, ExtrasSeparator and ExtrasSuffix control extras
	// rendering. Unset values default to " ", " " and "".
	ExtrasPrefix    string
	ExtrasSeparator string
	ExtrasSuffix    string

	once   sync.Once
	colors map[Level]string
}

// resolvePalette computes the escape string table once. The table is
// read-only afterwards so concurrent Format calls share it safely.
func (f *TextFormatter) resolvePalette() {
	p := f.Palette
	if p == nil {
		p = &DefaultPalette
	}
	f.colors = map[Level]string{
		LevelDebug:    p.Debug.escape(),
		LevelInfo:     p.Info.escape(),
		LevelWarning:  p.Warning.escape(),
		LevelError:    p.Error.escape(),
		LevelCritical: p.Critical.escape(),
	}
}

// resolveColor returns the start and stop escapes for a severity. Both are
// empty off-terminal, and an unmapped severity yields no decoration rather
// than an error.
func (f *TextFormatter) resolveColor(level Level, tty bool) (string, string) {
	if !tty || f.DisableColor {
		return "", ""
	}
	f.once.Do(f.resolvePalette)
	start, ok := f.colors[level]
	if !ok {
		return "", ""
	}
	return start, colorStop
}

// formatExtras renders the record extras as "[k: v]" groups joined by the
// separator. The result is empty when no fields survive the keyword filter,
// otherwise it is wrapped in the prefix and suffix.
func (f *TextFormatter) formatExtras(r *Record) string {
	if len(r.Fields) == 0 {
		return ""
	}
	var buf bytes.Buffer
	sep := f.ExtrasSeparator
	if sep == "" {
		sep = " "
	}
	for _, fld := range r.Fields {
		if _, skip := f.Keywords[fld.Key]; skip {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString(sep)
		}
		fmt.Fprintf(&buf, "[%s: %v]", fld.Key, fld.Value)
	}
	if buf.Len() == 0 {
		return ""
	}
	prefix := f.ExtrasPrefix
	if prefix == "" {
		prefix = " "
	}
	return prefix + buf.String() + f.ExtrasSuffix
}

func (f *TextFormatter) Format(r *Record, tty bool) []byte {
	layout := f.TimeFormat
	if layout == "" {
		layout = DefaultTimeFormat
	}
	color, stop := f.resolveColor(r.Level, tty)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s [%d] %s%-8.8s %s%s: %s",
		r.Time.Format(layout), r.PID, color, r.Level.String(),
		r.Name, f.formatExtras(r), r.Message)
	if r.Err != nil {
		fmt.Fprintf(&buf, "\n%v", r.Err)
	}
	if len(r.Stack) > 0 {
		buf.WriteByte('\n')
		buf.Write(bytes.TrimRight(r.Stack, "\n"))
	}
	buf.WriteString(stop)
	buf.WriteByte('\n')
	return buf.Bytes()
}
