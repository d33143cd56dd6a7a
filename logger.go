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
	"os"
	"runtime"
	"runtime/debug"
	"time"
)

var pid = os.Getpid()

// Logger emits records to a registry under a fixed name, with optional bound
// fields included in every record. Loggers are cheap values; With-style
// methods return copies, so a Logger is safe to share across goroutines.
type Logger struct {
	reg    *Registry
	name   string
	fields Fields
	err    error
	stack  []byte
}

// Logger builds a named logger. Bound fields are rendered with every record,
// before any call-site fields.
func (r *Registry) Logger(name string, fields ...Field) *Logger {
	return &Logger{
		reg:    r,
		name:   name,
		fields: Fields(fields),
	}
}

// With returns a copy of the logger with more bound fields. A field with an
// already-bound key overrides the bound value in place.
func (l *Logger) With(fields ...Field) *Logger {
	clone := *l
	clone.fields = l.fields.merged(Fields(fields))
	return &clone
}

// WithError returns a copy of the logger that attaches err to every record.
func (l *Logger) WithError(err error) *Logger {
	clone := *l
	clone.err = err
	return &clone
}

// WithStack returns a copy of the logger that attaches the current goroutine
// stack trace to every record.
func (l *Logger) WithStack() *Logger {
	clone := *l
	clone.stack = debug.Stack()
	return &clone
}

// Name returns the logger name.
func (l *Logger) Name() string { return l.name }

func (l *Logger) Debug(msg string, fields ...Field) error {
	return l.log(LevelDebug, msg, fields)
}

func (l *Logger) Info(msg string, fields ...Field) error {
	return l.log(LevelInfo, msg, fields)
}

func (l *Logger) Warning(msg string, fields ...Field) error {
	return l.log(LevelWarning, msg, fields)
}

func (l *Logger) Error(msg string, fields ...Field) error {
	return l.log(LevelError, msg, fields)
}

func (l *Logger) Critical(msg string, fields ...Field) error {
	return l.log(LevelCritical, msg, fields)
}

func (l *Logger) Debugf(format string, args ...interface{}) error {
	return l.log(LevelDebug, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Infof(format string, args ...interface{}) error {
	return l.log(LevelInfo, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Warningf(format string, args ...interface{}) error {
	return l.log(LevelWarning, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Errorf(format string, args ...interface{}) error {
	return l.log(LevelError, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Criticalf(format string, args ...interface{}) error {
	return l.log(LevelCritical, fmt.Sprintf(format, args...), nil)
}

// Log emits a record at an arbitrary severity. It is the entry point the
// bridges use.
func (l *Logger) Log(level Level, msg string, fields ...Field) error {
	return l.log(level, msg, fields)
}

func (l *Logger) log(level Level, msg string, extra Fields) error {
	if !l.reg.enabled(l.name, level) {
		return nil
	}

	rec := &Record{
		Time:    time.Now(),
		Level:   level,
		Name:    l.name,
		Message: msg,
		Fields:  l.fields.merged(extra),
		Err:     l.err,
		Stack:   l.stack,
		PID:     pid,
	}
	// Caller of the exported level method.
	if pc, file, line, ok := runtime.Caller(2); ok {
		rec.File = file
		rec.Line = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			rec.Func = fn.Name()
		}
	}
	return l.reg.emit(rec)
}
