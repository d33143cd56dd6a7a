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
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Output is a configured log destination: a writer, the formatter rendering
// records for it and an optional minimum severity. Send is called once per
// record and any transport error propagates to the logging caller; there is
// no retry and no silent loss masking.
type Output interface {
	Send(r *Record) error
	MinLevel() Level
	Close() error
}

// Option configures an output at construction time.
type Option func(*outputOptions)

type outputOptions struct {
	formatter Formatter
	level     Level
}

// WithFormatter sets the formatter of an output. The default is a zero-value
// TextFormatter.
func WithFormatter(f Formatter) Option {
	return func(o *outputOptions) { o.formatter = f }
}

// WithLevel sets the minimum severity of an output. An output never emits
// below its own minimum even if the registry level is lower.
func WithLevel(l Level) Option {
	return func(o *outputOptions) { o.level = l }
}

func applyOptions(opts []Option) outputOptions {
	o := outputOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.formatter == nil {
		o.formatter = &TextFormatter{}
	}
	return o
}

// writerOutput is the common writer-backed output.
type writerOutput struct {
	w         io.Writer
	formatter Formatter
	level     Level
	tty       bool
	closer    io.Closer
}

func (o *writerOutput) Send(r *Record) error {
	_, err := o.w.Write(o.formatter.Format(r, o.tty))
	return err
}

func (o *writerOutput) MinLevel() Level { return o.level }

func (o *writerOutput) Close() error {
	if o.closer == nil {
		return nil
	}
	return o.closer.Close()
}

func streamIsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewStream returns an output writing formatted records to w. When w is a
// terminal the text formatter decorates lines with the palette colors; the
// terminal check happens once, here.
func NewStream(w io.Writer, opts ...Option) Output {
	o := applyOptions(opts)
	return &writerOutput{
		w:         w,
		formatter: o.formatter,
		level:     o.level,
		tty:       streamIsTTY(w),
	}
}

var (
	syncWriterLock   sync.Mutex
	stdoutSyncWriter io.Writer
	stderrSyncWriter io.Writer
)

func assertSyncWriters() {
	defer syncWriterLock.Unlock()
	syncWriterLock.Lock()

	if stdoutSyncWriter == nil {
		stdoutSyncWriter = kitlog.NewSyncWriter(os.Stdout)
	}

	if stderrSyncWriter == nil {
		stderrSyncWriter = kitlog.NewSyncWriter(os.Stderr)
	}
}

// Stderr returns an output to the process standard error stream. The stream
// is shared process-wide, so all Stderr outputs write through one
// synchronized writer.
func Stderr(opts ...Option) Output {
	assertSyncWriters()
	o := applyOptions(opts)
	return &writerOutput{
		w:         stderrSyncWriter,
		formatter: o.formatter,
		level:     o.level,
		tty:       streamIsTTY(os.Stderr),
	}
}

// Stdout returns an output to the process standard output stream.
func Stdout(opts ...Option) Output {
	assertSyncWriters()
	o := applyOptions(opts)
	return &writerOutput{
		w:         stdoutSyncWriter,
		formatter: o.formatter,
		level:     o.level,
		tty:       streamIsTTY(os.Stdout),
	}
}

// programName is the default program identifier used for log file names,
// syslog tags and the journald identifier.
func programName() string {
	return filepath.Base(os.Args[0])
}

// FileConfig locates a log file. Filename alone is used as-is; combined with
// Directory both are joined; Directory alone derives the name from the
// program name and suffix.
type FileConfig struct {
	Filename    string
	Directory   string
	Suffix      string
	ProgramName string
}

func (c FileConfig) path() (string, error) {
	suffix := c.Suffix
	if suffix == "" {
		suffix = ".log"
	}
	switch {
	case c.Directory == "" && c.Filename != "":
		return c.Filename, nil
	case c.Filename != "":
		return filepath.Join(c.Directory, c.Filename), nil
	case c.Directory != "":
		program := c.ProgramName
		if program == "" {
			program = programName()
		}
		return filepath.Join(c.Directory, program) + suffix, nil
	}
	return "", errors.New("unable to determine log file destination")
}

// NewFile returns an output appending to a log file. The file is reopened
// transparently after an external rotation moves or deletes it.
func NewFile(cfg FileConfig, opts ...Option) (Output, error) {
	path, err := cfg.path()
	if err != nil {
		return nil, err
	}
	w, err := openWatchedFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open log file %q", path)
	}
	o := applyOptions(opts)
	return &writerOutput{
		w:         w,
		formatter: o.formatter,
		level:     o.level,
		closer:    w,
	}, nil
}

// RotatingFileOutput is a file output that can be rolled over on demand.
type RotatingFileOutput struct {
	writerOutput
	rotate func() error
}

// Rotate forces a rollover of the current log file.
func (o *RotatingFileOutput) Rotate() error { return o.rotate() }

// RotatingFileConfig configures size-triggered rotation. MaxSizeMB bounds the
// current file size in megabytes; BackupCount bounds the retained archives.
type RotatingFileConfig struct {
	FileConfig
	MaxSizeMB   int
	BackupCount int
	Compress    bool
}

// NewRotatingFile returns an output to a file that rolls over once it grows
// beyond the configured size.
func NewRotatingFile(cfg RotatingFileConfig, opts ...Option) (*RotatingFileOutput, error) {
	path, err := cfg.path()
	if err != nil {
		return nil, err
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.BackupCount,
		Compress:   cfg.Compress,
	}
	o := applyOptions(opts)
	return &RotatingFileOutput{
		writerOutput: writerOutput{
			w:         w,
			formatter: o.formatter,
			level:     o.level,
			closer:    w,
		},
		rotate: w.Rotate,
	}, nil
}

// TimedRotatingFileConfig configures interval-triggered rotation.
type TimedRotatingFileConfig struct {
	FileConfig
	Interval    time.Duration
	BackupCount int
}

// NewTimedRotatingFile returns an output to a file that rolls over once the
// configured interval has elapsed since the previous rollover.
func NewTimedRotatingFile(cfg TimedRotatingFileConfig, opts ...Option) (*RotatingFileOutput, error) {
	path, err := cfg.path()
	if err != nil {
		return nil, err
	}
	w, err := openTimedRotatingFile(path, cfg.Interval, cfg.BackupCount)
	if err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	return &RotatingFileOutput{
		writerOutput: writerOutput{
			w:         w,
			formatter: o.formatter,
			level:     o.level,
			closer:    w,
		},
		rotate: w.rotate,
	}, nil
}

// DatadogConfig locates the local Datadog agent TCP intake.
type DatadogConfig struct {
	Hostname string
	Port     int
}

// NewDatadog returns an output writing Datadog-shaped JSON lines to a TCP
// socket, one newline-terminated write per record, no acknowledgement. The
// connection is established here so an unreachable agent fails the setup,
// not the first log call.
func NewDatadog(cfg DatadogConfig, opts ...Option) (Output, error) {
	hostname := cfg.Hostname
	if hostname == "" {
		hostname = "127.0.0.1"
	}
	port := cfg.Port
	if port == 0 {
		port = 10518
	}
	addr := net.JoinHostPort(hostname, strconv.Itoa(port))
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot connect to datadog agent at %s", addr)
	}
	o := outputOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.formatter == nil {
		o.formatter = DatadogFormatter{}
	}
	return &writerOutput{
		w:         kitlog.NewSyncWriter(conn),
		formatter: o.formatter,
		level:     o.level,
		closer:    conn,
	}, nil
}

// SyslogConfig configures the syslog output. Facility accepts the usual
// names ("user", "daemon", "local0"...), case-insensitive, with an optional
// "LOG_" prefix.
type SyslogConfig struct {
	ProgramName string
	Facility    string
}

// JournalConfig configures the systemd journal output.
type JournalConfig struct {
	ProgramName string
}

// NewNamedOutput resolves a short output name to a freshly built output.
// Recognized names are "stderr", "stdout", "syslog" and "journal"; syslog and
// journal fail here when the platform does not provide them.
func NewNamedOutput(name string) (Output, error) {
	switch name {
	case "stderr":
		return Stderr(), nil
	case "stdout":
		return Stdout(), nil
	case "syslog":
		return NewSyslog(SyslogConfig{})
	case "journal":
		return NewJournal(JournalConfig{})
	}
	return nil, errors.Errorf("unknown output %q (available: %s)",
		name, "stderr, stdout, syslog, journal")
}
