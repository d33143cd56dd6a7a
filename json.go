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
	"fmt"
	"strings"
	"time"
)

// JSONFormatter renders one flat JSON object per line with the message and
// every extra field as top-level keys. A field keyed "message" overrides the
// message entry; shadowing envelope keys is the caller's risk.
type JSONFormatter struct{}

func (JSONFormatter) Format(r *Record, _ bool) []byte {
	obj := make(map[string]interface{}, len(r.Fields)+3)
	obj["message"] = r.Message
	for _, fld := range r.Fields {
		obj[fld.Key] = fld.Value
	}
	if r.Err != nil {
		obj["error"] = r.Err.Error()
	}
	if len(r.Stack) > 0 {
		obj["stack"] = string(r.Stack)
	}
	return appendJSONLine(obj)
}

// DatadogFormatter renders JSON lines in the shape the Datadog TCP intake
// expects: lower-cased status, nested logger name, RFC3339 timestamp and an
// error kind/message/stack object when exception data is attached.
type DatadogFormatter struct{}

func (DatadogFormatter) Format(r *Record, _ bool) []byte {
	obj := make(map[string]interface{}, len(r.Fields)+5)
	obj["message"] = r.Message
	obj["status"] = strings.ToLower(r.Level.String())
	obj["logger"] = map[string]interface{}{
		"name": r.Name,
	}
	obj["timestamp"] = r.Time.Format(time.RFC3339Nano)
	for _, fld := range r.Fields {
		obj[fld.Key] = fld.Value
	}
	if r.Err != nil {
		obj["error"] = map[string]interface{}{
			"kind":    fmt.Sprintf("%T", r.Err),
			"message": r.Err.Error(),
			"stack":   string(r.Stack),
		}
	}
	return appendJSONLine(obj)
}

func appendJSONLine(obj map[string]interface{}) []byte {
	buf, err := json.Marshal(obj)
	if err != nil {
		// A field value the encoder rejects must not lose the whole
		// record; fall back to the values' string forms.
		for k, v := range obj {
			if _, ok := v.(string); !ok {
				obj[k] = fmt.Sprintf("%v", v)
			}
		}
		buf, _ = json.Marshal(obj)
	}
	return append(buf, '\n')
}
