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

//go:build linux

package daiquiri

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/ssgreg/journald"
)

type journalOutput struct {
	program   string
	formatter Formatter
	level     Level
}

// NewJournal returns an output sending records to the systemd journal with
// structured metadata (source location, logger name, extra fields). The
// journal socket is probed here so a systemd-less host fails at
// configuration time.
func NewJournal(cfg JournalConfig, opts ...Option) (Output, error) {
	if journald.IsNotExist() {
		return nil, errors.New("systemd journal is not available on this host")
	}
	program := cfg.ProgramName
	if program == "" {
		program = programName()
	}
	o := applyOptions(opts)
	return &journalOutput{
		program:   program,
		formatter: o.formatter,
		level:     o.level,
	}, nil
}

func (o *journalOutput) Send(r *Record) error {
	message := strings.TrimRight(string(o.formatter.Format(r, false)), "\n")

	fields := map[string]interface{}{
		"CODE_FILE":         r.File,
		"CODE_LINE":         r.Line,
		"CODE_FUNC":         r.Func,
		"LOGGER_NAME":       r.Name,
		"LOGGER_LEVEL":      r.Level.String(),
		"SYSLOG_IDENTIFIER": o.program,
	}
	for _, fld := range r.Fields {
		fields[journalFieldName(fld.Key)] = fld.Value
	}
	if r.Err != nil {
		fields["ERROR"] = r.Err.Error()
	}
	if len(r.Stack) > 0 {
		fields["STACK"] = string(r.Stack)
	}

	return journald.Send(message, journald.Priority(r.Level.syslogPriority()), fields)
}

func (o *journalOutput) MinLevel() Level { return o.level }

func (o *journalOutput) Close() error { return nil }

// journalFieldName maps a field key onto the journal's field-name alphabet:
// upper case, digits and underscores, not starting with an underscore.
func journalFieldName(key string) string {
	var b strings.Builder
	for _, c := range strings.ToUpper(key) {
		switch {
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name == "" || name[0] == '_' || (name[0] >= '0' && name[0] <= '9') {
		name = "X" + name
	}
	return name
}
