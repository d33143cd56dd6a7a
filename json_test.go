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
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func decodeLine(t *testing.T, line []byte) map[string]interface{} {
	t.Helper()
	if !strings.HasSuffix(string(line), "\n") {
		t.Fatalf("expected a newline-terminated object, found %q", line)
	}
	decoded := make(map[string]interface{})
	if err := json.Unmarshal(line, &decoded); err != nil {
		t.Fatalf("failed to decode %q, %v", line, err)
	}
	return decoded
}

func TestJSONFormat(t *testing.T) {
	decoded := decodeLine(t, JSONFormatter{}.Format(testRecord(LevelWarning, "foobar"), false))
	if len(decoded) != 1 || decoded["message"] != "foobar" {
		t.Errorf("expected only a message entry, found %v", decoded)
	}
}

func TestJSONFormatWithExtras(t *testing.T) {
	decoded := decodeLine(t, JSONFormatter{}.Format(
		testRecord(LevelWarning, "foobar", F("foo", "bar")), false))
	if decoded["message"] != "foobar" || decoded["foo"] != "bar" {
		t.Errorf("expected message and foo entries, found %v", decoded)
	}
}

func TestJSONFormatWithError(t *testing.T) {
	rec := testRecord(LevelError, "argh")
	rec.Err = errors.New("broken pipe")
	rec.Stack = []byte("stack here")

	decoded := decodeLine(t, JSONFormatter{}.Format(rec, false))
	if decoded["error"] != "broken pipe" || decoded["stack"] != "stack here" {
		t.Errorf("expected error and stack entries, found %v", decoded)
	}
}

func TestDatadogFormat(t *testing.T) {
	decoded := decodeLine(t, DatadogFormatter{}.Format(
		testRecord(LevelWarning, "foobar", F("foo", "bar")), false))

	if decoded["message"] != "foobar" || decoded["foo"] != "bar" {
		t.Errorf("expected message and foo entries, found %v", decoded)
	}
	if decoded["status"] != "warning" {
		t.Errorf("expected a lower-cased status, found %v", decoded["status"])
	}
	logger, ok := decoded["logger"].(map[string]interface{})
	if !ok || logger["name"] != "my_module" {
		t.Errorf("expected a nested logger name, found %v", decoded["logger"])
	}
	if decoded["timestamp"] != "2023-04-05T06:07:08.91Z" {
		t.Errorf("expected an RFC3339 timestamp, found %v", decoded["timestamp"])
	}
	if _, found := decoded["error"]; found {
		t.Errorf("expected no error entry, found %v", decoded["error"])
	}
}

func TestDatadogFormatWithError(t *testing.T) {
	rec := testRecord(LevelError, "argh")
	rec.Err = errors.New("broken pipe")
	rec.Stack = []byte("stack here")

	decoded := decodeLine(t, DatadogFormatter{}.Format(rec, false))
	errObj, ok := decoded["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected an error object, found %v", decoded["error"])
	}
	if errObj["message"] != "broken pipe" || errObj["stack"] != "stack here" {
		t.Errorf("expected error message and stack, found %v", errObj)
	}
	if kind, _ := errObj["kind"].(string); kind == "" {
		t.Errorf("expected an error kind, found %v", errObj["kind"])
	}
}
