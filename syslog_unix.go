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

//go:build !windows && !plan9

package daiquiri

import (
	"log/syslog"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var syslogFacilities = map[string]syslog.Priority{
	"LOG_KERN":     syslog.LOG_KERN,
	"LOG_USER":     syslog.LOG_USER,
	"LOG_MAIL":     syslog.LOG_MAIL,
	"LOG_DAEMON":   syslog.LOG_DAEMON,
	"LOG_AUTH":     syslog.LOG_AUTH,
	"LOG_SYSLOG":   syslog.LOG_SYSLOG,
	"LOG_LPR":      syslog.LOG_LPR,
	"LOG_NEWS":     syslog.LOG_NEWS,
	"LOG_UUCP":     syslog.LOG_UUCP,
	"LOG_CRON":     syslog.LOG_CRON,
	"LOG_AUTHPRIV": syslog.LOG_AUTHPRIV,
	"LOG_FTP":      syslog.LOG_FTP,
	"LOG_LOCAL0":   syslog.LOG_LOCAL0,
	"LOG_LOCAL1":   syslog.LOG_LOCAL1,
	"LOG_LOCAL2":   syslog.LOG_LOCAL2,
	"LOG_LOCAL3":   syslog.LOG_LOCAL3,
	"LOG_LOCAL4":   syslog.LOG_LOCAL4,
	"LOG_LOCAL5":   syslog.LOG_LOCAL5,
	"LOG_LOCAL6":   syslog.LOG_LOCAL6,
	"LOG_LOCAL7":   syslog.LOG_LOCAL7,
}

// findFacility resolves a facility name, case-insensitive, with or without
// the "LOG_" prefix.
func findFacility(name string) (syslog.Priority, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(upper, "LOG_") {
		upper = "LOG_" + upper
	}
	if facility, ok := syslogFacilities[upper]; ok {
		return facility, nil
	}
	valid := make([]string, 0, len(syslogFacilities))
	for f := range syslogFacilities {
		valid = append(valid, f)
	}
	sort.Strings(valid)
	return 0, errors.Errorf("syslog facility must be one of: %s",
		strings.Join(valid, ", "))
}

type syslogOutput struct {
	w         *syslog.Writer
	formatter Formatter
	level     Level
}

// NewSyslog returns an output sending formatted records to the local syslog
// daemon. The facility defaults to "user" and the tag to the program name.
func NewSyslog(cfg SyslogConfig, opts ...Option) (Output, error) {
	facilityName := cfg.Facility
	if facilityName == "" {
		facilityName = "user"
	}
	facility, err := findFacility(facilityName)
	if err != nil {
		return nil, err
	}
	program := cfg.ProgramName
	if program == "" {
		program = programName()
	}
	w, err := syslog.New(facility|syslog.LOG_INFO, program)
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to syslog")
	}
	o := applyOptions(opts)
	return &syslogOutput{
		w:         w,
		formatter: o.formatter,
		level:     o.level,
	}, nil
}

func (o *syslogOutput) Send(r *Record) error {
	message := strings.TrimRight(string(o.formatter.Format(r, false)), "\n")
	switch r.Level {
	case LevelCritical:
		return o.w.Crit(message)
	case LevelError:
		return o.w.Err(message)
	case LevelWarning:
		return o.w.Warning(message)
	case LevelInfo:
		return o.w.Info(message)
	default:
		return o.w.Debug(message)
	}
}

func (o *syslogOutput) MinLevel() Level { return o.level }

func (o *syslogOutput) Close() error { return o.w.Close() }
