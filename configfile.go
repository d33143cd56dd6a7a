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
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// fileSetup is the TOML shape accepted by SetupFromFile:
//
//	level = "info"
//	program_name = "foobar"
//	capture_stdlog = true
//	outputs = ["stderr"]
//
//	[[output]]
//	type = "rotating-file"
//	directory = "/var/log/foobar"
//	max_size_mb = 64
//	backup_count = 3
//	level = "debug"
//	format = "json"
type fileSetup struct {
	Level         Level         `toml:"level"`
	ProgramName   string        `toml:"program_name"`
	CaptureStdlog bool          `toml:"capture_stdlog"`
	OutputNames   []string      `toml:"outputs"`
	Outputs       []outputSetup `toml:"output"`
}

type outputSetup struct {
	Type   string `toml:"type"`
	Level  Level  `toml:"level"`
	Format string `toml:"format"`

	Filename    string `toml:"filename"`
	Directory   string `toml:"directory"`
	Suffix      string `toml:"suffix"`
	ProgramName string `toml:"program_name"`

	MaxSizeMB   int    `toml:"max_size_mb"`
	BackupCount int    `toml:"backup_count"`
	Compress    bool   `toml:"compress"`
	Interval    string `toml:"interval"`

	Facility string `toml:"facility"`

	Hostname string `toml:"hostname"`
	Port     int    `toml:"port"`
}

// SetupFromFile reads a TOML setup file and builds a registry from it.
func SetupFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read logging configuration %q", path)
	}
	reg, err := SetupFromConfigData(data)
	return reg, errors.Wrapf(err, "invalid logging configuration %q", path)
}

// SetupFromConfigData builds a registry from TOML setup data.
func SetupFromConfigData(data []byte) (*Registry, error) {
	var fs fileSetup
	if err := toml.Unmarshal(data, &fs); err != nil {
		return nil, err
	}

	outputs := make([]Output, 0, len(fs.Outputs))
	closeBuilt := func() {
		for _, out := range outputs {
			out.Close()
		}
	}
	for i := range fs.Outputs {
		out, err := buildOutput(&fs.Outputs[i])
		if err != nil {
			closeBuilt()
			return nil, err
		}
		outputs = append(outputs, out)
	}

	reg, err := Setup(&Config{
		Level:         fs.Level,
		Outputs:       outputs,
		OutputNames:   fs.OutputNames,
		ProgramName:   fs.ProgramName,
		CaptureStdlog: fs.CaptureStdlog,
	})
	if err != nil {
		closeBuilt()
		return nil, err
	}
	return reg, nil
}

func (o *outputSetup) formatter() (Formatter, error) {
	switch o.Format {
	case "", "text":
		return &TextFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	case "datadog":
		return DatadogFormatter{}, nil
	}
	return nil, errors.Errorf("unknown log format %q (available: text, json, datadog)", o.Format)
}

func (o *outputSetup) options() ([]Option, error) {
	formatter, err := o.formatter()
	if err != nil {
		return nil, err
	}
	opts := []Option{WithFormatter(formatter)}
	if o.Level != LevelNotSet {
		opts = append(opts, WithLevel(o.Level))
	}
	return opts, nil
}

func (o *outputSetup) fileConfig() FileConfig {
	return FileConfig{
		Filename:    o.Filename,
		Directory:   o.Directory,
		Suffix:      o.Suffix,
		ProgramName: o.ProgramName,
	}
}

func buildOutput(o *outputSetup) (Output, error) {
	opts, err := o.options()
	if err != nil {
		return nil, err
	}
	switch o.Type {
	case "stderr":
		return Stderr(opts...), nil
	case "stdout":
		return Stdout(opts...), nil
	case "file":
		return NewFile(o.fileConfig(), opts...)
	case "rotating-file":
		return NewRotatingFile(RotatingFileConfig{
			FileConfig:  o.fileConfig(),
			MaxSizeMB:   o.MaxSizeMB,
			BackupCount: o.BackupCount,
			Compress:    o.Compress,
		}, opts...)
	case "timed-rotating-file":
		interval, err := time.ParseDuration(o.Interval)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid rotation interval %q", o.Interval)
		}
		return NewTimedRotatingFile(TimedRotatingFileConfig{
			FileConfig:  o.fileConfig(),
			Interval:    interval,
			BackupCount: o.BackupCount,
		}, opts...)
	case "syslog":
		return NewSyslog(SyslogConfig{
			ProgramName: o.ProgramName,
			Facility:    o.Facility,
		}, opts...)
	case "journal":
		return NewJournal(JournalConfig{
			ProgramName: o.ProgramName,
		}, opts...)
	case "datadog":
		return NewDatadog(DatadogConfig{
			Hostname: o.Hostname,
			Port:     o.Port,
		}, opts...)
	}
	return nil, errors.Errorf("unknown output type %q", o.Type)
}
