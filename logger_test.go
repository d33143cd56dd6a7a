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

	"github.com/pkg/errors"
)

func TestLoggerWith(t *testing.T) {
	reg, buf := bufferSetup(t, nil)

	base := reg.Logger("my_module", F("subsystem", "example"))
	derived := base.With(F("mood", "happy"))

	derived.Info("hello")
	if !strings.Contains(buf.String(), "my_module [subsystem: example] [mood: happy]: hello") {
		t.Errorf("expected both bound fields, found %q", buf.String())
	}

	buf.Reset()
	base.Info("again")
	if strings.Contains(buf.String(), "mood") {
		t.Errorf("expected With to leave the base logger unchanged, found %q", buf.String())
	}
}

func TestLoggerCallFieldsOverrideBound(t *testing.T) {
	reg, buf := bufferSetup(t, nil)

	logger := reg.Logger("my_module", F("mood", "gloomy"))
	logger.Info("hello", F("mood", "happy"))

	if !strings.Contains(buf.String(), "[mood: happy]") {
		t.Errorf("expected the call-site value to win, found %q", buf.String())
	}
	if strings.Contains(buf.String(), "gloomy") {
		t.Errorf("expected the bound value to be overridden, found %q", buf.String())
	}
}

func TestLoggerPrintf(t *testing.T) {
	reg, buf := bufferSetup(t, nil)

	reg.Logger("my_module").Errorf("failed %d times", 3)
	if !strings.Contains(buf.String(), "ERROR    my_module: failed 3 times") {
		t.Errorf("expected a formatted message, found %q", buf.String())
	}
}

func TestLoggerWithError(t *testing.T) {
	reg, buf := bufferSetup(t, nil)

	reg.Logger("my_module").WithError(errors.New("broken pipe")).Error("write failed")
	if !strings.Contains(buf.String(), "write failed\nbroken pipe\n") {
		t.Errorf("expected the error after the message, found %q", buf.String())
	}
}

func TestLoggerWithStack(t *testing.T) {
	reg, buf := bufferSetup(t, nil)

	reg.Logger("my_module").WithStack().Error("argh")
	if !strings.Contains(buf.String(), "goroutine") {
		t.Errorf("expected a stack trace, found %q", buf.String())
	}
}

func TestLoggerCallerInfo(t *testing.T) {
	var rec *Record
	reg, err := Setup(&Config{Level: LevelDebug, Outputs: []Output{&captureOutput{rec: &rec}}})
	if err != nil {
		t.Fatalf("failed to set up logging, %v", err)
	}
	defer reg.Close()

	reg.Logger("my_module").Info("hello")
	if rec == nil {
		t.Fatal("expected a record")
	}
	if !strings.HasSuffix(rec.File, "logger_test.go") {
		t.Errorf("expected the caller file, found %q", rec.File)
	}
	if rec.Line == 0 || rec.Func == "" {
		t.Errorf("expected caller line and function, found %d, %q", rec.Line, rec.Func)
	}
	if rec.PID == 0 {
		t.Error("expected the process id on the record")
	}
}

// captureOutput keeps the last record for inspection.
type captureOutput struct {
	rec **Record
}

func (o *captureOutput) Send(r *Record) error {
	*o.rec = r
	return nil
}

func (o *captureOutput) MinLevel() Level { return LevelNotSet }

func (o *captureOutput) Close() error { return nil }
