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
	"time"
)

// Field is a single caller-supplied extra attached to a log call.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Fields is an ordered collection of extras. Order is preserved end to end
// so rendered output is deterministic.
type Fields []Field

// merged combines bound fields with call-site fields. Call-site values
// override bound values with the same key but keep the bound position; new
// keys are appended in call order.
func (f Fields) merged(extra Fields) Fields {
	if len(extra) == 0 {
		return f
	}
	if len(f) == 0 {
		return extra
	}
	out := make(Fields, len(f), len(f)+len(extra))
	copy(out, f)
	for _, fld := range extra {
		replaced := false
		for i := range out {
			if out[i].Key == fld.Key {
				out[i].Value = fld.Value
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, fld)
		}
	}
	return out
}

// Record is one discrete log event. It is built once per log call and handed
// to every configured output; formatters treat it as read-only, so formatting
// the same record any number of times yields identical results.
type Record struct {
	Time    time.Time
	Level   Level
	Name    string
	Message string
	Fields  Fields

	// Err and Stack carry exception-style data. They never appear in
	// Fields so generic extras rendering cannot swallow them.
	Err   error
	Stack []byte

	PID  int
	File string
	Line int
	Func string
}
