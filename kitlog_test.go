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
	"strings"
	"testing"

	"github.com/go-kit/kit/log/level"
)

func TestGoKitLogger(t *testing.T) {
	reg, buf := bufferSetup(t, nil)

	logger := reg.GoKitLogger("my_module")
	if err := level.Warn(logger).Log("msg", "boo", "key", "value"); err != nil {
		t.Fatalf("failed to log, %v", err)
	}

	if !strings.Contains(buf.String(), "WARNING  my_module [key: value]: boo") {
		t.Errorf("expected a daiquiri-formatted line, found %q", buf.String())
	}
}

func TestGoKitLoggerDefaultLevel(t *testing.T) {
	reg, buf := bufferSetup(t, nil)

	if err := reg.GoKitLogger("my_module").Log("msg", "plain"); err != nil {
		t.Fatalf("failed to log, %v", err)
	}
	if !strings.Contains(buf.String(), "INFO     my_module: plain") {
		t.Errorf("expected an info line, found %q", buf.String())
	}
}

func TestGoKitLoggerFiltered(t *testing.T) {
	reg, buf := bufferSetup(t, &Config{Level: LevelWarning})

	logger := reg.GoKitLogger("my_module")
	if err := level.Debug(logger).Log("msg", "dropped"); err != nil {
		t.Fatalf("failed to log, %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected the debug record to be dropped, found %q", buf.String())
	}
}
