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
	"strings"
	"testing"
)

func TestFindFacility(t *testing.T) {
	tests := []struct {
		name     string
		expected syslog.Priority
	}{
		{"user", syslog.LOG_USER},
		{"log_local1", syslog.LOG_LOCAL1},
		{"LOG_local2", syslog.LOG_LOCAL2},
		{"LOG_LOCAL3", syslog.LOG_LOCAL3},
		{"LOCaL4", syslog.LOG_LOCAL4},
		{"daemon", syslog.LOG_DAEMON},
	}

	for _, tt := range tests {
		facility, err := findFacility(tt.name)
		if err != nil {
			t.Errorf("failed to resolve %q, %v", tt.name, err)
		}
		if facility != tt.expected {
			t.Errorf("expected %q to resolve to %v, found %v", tt.name, tt.expected, facility)
		}
	}
}

func TestFindFacilityUnknown(t *testing.T) {
	_, err := findFacility("nonexistent")
	if err == nil {
		t.Fatal("expected an error for an unknown facility")
	}
	if !strings.Contains(err.Error(), "LOG_USER") {
		t.Errorf("expected the valid facilities in the error, found %q", err.Error())
	}
}
