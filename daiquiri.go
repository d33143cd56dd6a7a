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
	"io"
	stdlog "log"
	"strings"
	"sync"

	"github.com/go-kit/kit/metrics"
	"github.com/pkg/errors"
)

// stdlogLoggerName is the logger records captured from the standard library
// log package are attributed to.
const stdlogLoggerName = "go.stdlog"

// Config carries logging setup configuration.
type Config struct {
	// Level is the minimum severity emitted. Defaults to warning.
	Level Level
	// Outputs are pre-built outputs to register.
	Outputs []Output
	// OutputNames are short names ("stderr", "stdout", "syslog",
	// "journal") resolved at setup time. An unknown name fails the setup.
	// When neither Outputs nor OutputNames is given, stderr is used.
	OutputNames []string
	// ProgramName overrides the auto-detected program name used for the
	// panic logger.
	ProgramName string
	// CaptureStdlog redirects the standard library log package default
	// output through this registry at warning level.
	CaptureStdlog bool
	// Counter, when set, counts emitted records with a "level" label.
	Counter metrics.Counter
}

// Configuration returns a new instance of the default configuration:
// warning level, stderr output, stdlib log capture enabled.
func Configuration() *Config {
	return &Config{
		Level:         LevelWarning,
		OutputNames:   []string{"stderr"},
		CaptureStdlog: true,
	}
}

// Registry owns a set of configured outputs and dispatches every record to
// each of them. It is the handle returned by Setup; reconfiguration and
// teardown go through it, there is no package-global state.
type Registry struct {
	program string

	mu           sync.RWMutex
	level        Level
	loggerLevels map[string]Level
	outputs      []Output
	counter      metrics.Counter

	captured       bool
	stdlogPrevOut  io.Writer
	stdlogPrevFlag int
	stdlogPrevPfx  string
}

// Setup builds a registry from the configuration. Configuration errors
// (unknown output name, unavailable platform facility) fail here, before
// anything is emitted. A nil config means Configuration().
func Setup(cfg *Config) (*Registry, error) {
	if cfg == nil {
		cfg = Configuration()
	}

	level := cfg.Level
	if level == LevelNotSet {
		level = LevelWarning
	}

	outputs := make([]Output, 0, len(cfg.Outputs)+len(cfg.OutputNames))
	outputs = append(outputs, cfg.Outputs...)
	for _, name := range cfg.OutputNames {
		out, err := NewNamedOutput(name)
		if err != nil {
			for _, built := range outputs[len(cfg.Outputs):] {
				built.Close()
			}
			return nil, errors.Wrap(err, "logging setup failed")
		}
		outputs = append(outputs, out)
	}
	if len(outputs) == 0 {
		outputs = append(outputs, Stderr())
	}

	program := cfg.ProgramName
	if program == "" {
		program = programName()
	}

	r := &Registry{
		program:      program,
		level:        level,
		loggerLevels: make(map[string]Level),
		outputs:      outputs,
		counter:      cfg.Counter,
	}
	if cfg.CaptureStdlog {
		r.captureStdlog()
	}
	return r, nil
}

// SetOutputs replaces the registered outputs, closing the previous ones.
// Re-running a setup is idempotent: the old sinks are gone afterwards.
func (r *Registry) SetOutputs(outputs ...Output) error {
	r.mu.Lock()
	previous := r.outputs
	r.outputs = append([]Output(nil), outputs...)
	r.mu.Unlock()

	var firstErr error
	for _, out := range previous {
		if err := out.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Level returns the registry minimum severity.
func (r *Registry) Level() Level {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.level
}

// SetLevel changes the registry minimum severity.
func (r *Registry) SetLevel(level Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.level = level
}

// SetLoggerLevel sets the minimum severity for one logger name and its
// dotted descendants, overriding the registry level.
func (r *Registry) SetLoggerLevel(name string, level Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loggerLevels[name] = level
}

// ParseAndSetLoggerLevels applies "<name><separator><level>" pairs, e.g.
// "urllib=warn". An empty separator means "=".
func (r *Registry) ParseAndSetLoggerLevels(pairs []string, separator string) error {
	if separator == "" {
		separator = "="
	}
	type pair struct {
		name  string
		level Level
	}
	parsed := make([]pair, 0, len(pairs))
	for _, p := range pairs {
		parts := strings.SplitN(p, separator, 2)
		if len(parts) != 2 {
			return errors.Errorf("wrong log level format: %q", p)
		}
		level, err := ParseLevel(parts[1])
		if err != nil {
			return err
		}
		parsed = append(parsed, pair{name: parts[0], level: level})
	}
	for _, p := range parsed {
		r.SetLoggerLevel(p.name, p.level)
	}
	return nil
}

// effectiveLevel resolves the minimum severity for a logger name using the
// longest dotted-prefix override, falling back to the registry level.
func (r *Registry) effectiveLevel(name string) Level {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for candidate := name; candidate != ""; {
		if level, ok := r.loggerLevels[candidate]; ok {
			return level
		}
		i := strings.LastIndex(candidate, ".")
		if i < 0 {
			break
		}
		candidate = candidate[:i]
	}
	return r.level
}

func (r *Registry) enabled(name string, level Level) bool {
	return level >= r.effectiveLevel(name)
}

// emit offers a record to every output. The counter sees each record once;
// the first transport error is returned to the logging caller.
func (r *Registry) emit(rec *Record) error {
	r.mu.RLock()
	outputs := r.outputs
	counter := r.counter
	r.mu.RUnlock()

	if counter != nil {
		counter.With("level", rec.Level.String()).Add(1)
	}

	var firstErr error
	for _, out := range outputs {
		if min := out.MinLevel(); min != LevelNotSet && rec.Level < min {
			continue
		}
		if err := out.Send(rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close releases the registered outputs and restores the stdlib log output
// if it was captured.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.captured {
		stdlog.SetOutput(r.stdlogPrevOut)
		stdlog.SetFlags(r.stdlogPrevFlag)
		stdlog.SetPrefix(r.stdlogPrevPfx)
		r.captured = false
	}
	outputs := r.outputs
	r.outputs = nil
	r.mu.Unlock()

	var firstErr error
	for _, out := range outputs {
		if err := out.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// captureStdlog routes the stdlib log default logger through the registry at
// warning level, under the go.stdlog logger name.
func (r *Registry) captureStdlog() {
	r.stdlogPrevOut = stdlog.Writer()
	r.stdlogPrevFlag = stdlog.Flags()
	r.stdlogPrevPfx = stdlog.Prefix()
	stdlog.SetFlags(0)
	stdlog.SetPrefix("")
	stdlog.SetOutput(&stdlogWriter{logger: r.Logger(stdlogLoggerName)})
	r.captured = true
}

type stdlogWriter struct {
	logger *Logger
}

func (w *stdlogWriter) Write(p []byte) (int, error) {
	if err := w.logger.Warning(strings.TrimRight(string(p), "\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}

// RecoverPanic logs a panic and its stack at critical severity through a
// logger named after the program, then re-panics. Defer it at the top of
// main to get the crash into the configured outputs:
//
//	defer reg.RecoverPanic()
func (r *Registry) RecoverPanic() {
	v := recover()
	if v == nil {
		return
	}
	r.Logger(r.program).WithStack().Critical(fmt.Sprintf("panic: %v", v))
	panic(v)
}
