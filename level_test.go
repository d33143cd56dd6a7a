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
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarning},
		{"warning", LevelWarning},
		{"WARNING", LevelWarning},
		{" Error ", LevelError},
		{"critical", LevelCritical},
	}

	for _, tt := range tests {
		level, err := ParseLevel(tt.name)
		if err != nil {
			t.Errorf("failed to parse %q, %v", tt.name, err)
		}
		if level != tt.expected {
			t.Errorf("expected %q to parse as %v, found %v", tt.name, tt.expected, level)
		}
	}

	if _, err := ParseLevel("nonexistent"); err == nil {
		t.Error("expected an error for an unknown level name")
	}
}

func TestLevelString(t *testing.T) {
	if LevelWarning.String() != "WARNING" {
		t.Errorf("expected WARNING, found %q", LevelWarning.String())
	}
	if Level(15).String() != "LEVEL(15)" {
		t.Errorf("expected LEVEL(15), found %q", Level(15).String())
	}
}

func TestLevelTextRoundTrip(t *testing.T) {
	text, err := LevelError.MarshalText()
	if err != nil {
		t.Fatalf("failed to marshal, %v", err)
	}
	var level Level
	if err := level.UnmarshalText(text); err != nil {
		t.Fatalf("failed to unmarshal %q, %v", text, err)
	}
	if level != LevelError {
		t.Errorf("expected %v, found %v", LevelError, level)
	}
}

func TestSlogLevelMapping(t *testing.T) {
	tests := []struct {
		level    Level
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarning, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{LevelCritical, slog.LevelError + 4},
	}
	for _, tt := range tests {
		if found := tt.level.slogLevel(); found != tt.expected {
			t.Errorf("expected %v to map to %v, found %v", tt.level, tt.expected, found)
		}
		if back := levelFromSlog(tt.expected); back != tt.level {
			t.Errorf("expected %v to map back to %v, found %v", tt.expected, tt.level, back)
		}
	}
}

func TestSyslogPriority(t *testing.T) {
	tests := []struct {
		level    Level
		expected int
	}{
		{LevelCritical, 2},
		{LevelError, 3},
		{LevelWarning, 4},
		{LevelInfo, 6},
		{LevelDebug, 7},
		{Level(15), 7},
	}
	for _, tt := range tests {
		if found := tt.level.syslogPriority(); found != tt.expected {
			t.Errorf("expected priority %d for %v, found %d", tt.expected, tt.level, found)
		}
	}
}
