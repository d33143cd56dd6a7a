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
	"fmt"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// kitLogger adapts a registry to the go-kit log.Logger contract. The keyval
// pairs become record fields, the "msg" (or "message") key becomes the
// message and a go-kit level value selects the severity.
type kitLogger struct {
	logger *Logger
}

// GoKitLogger returns a go-kit logger emitting through the registry under
// the given logger name. Records without a level keyval are emitted at info.
func (r *Registry) GoKitLogger(name string) kitlog.Logger {
	return &kitLogger{logger: r.Logger(name)}
}

func (k *kitLogger) Log(keyvals ...interface{}) error {
	lvl := LevelInfo
	msg := ""
	fields := make(Fields, 0, len(keyvals)/2)

	for i := 0; i+1 < len(keyvals); i += 2 {
		if keyvals[i] == level.Key() {
			if v, ok := keyvals[i+1].(level.Value); ok {
				if parsed, err := ParseLevel(v.String()); err == nil {
					lvl = parsed
				}
				continue
			}
		}
		key := fmt.Sprint(keyvals[i])
		switch key {
		case "msg", "message":
			msg = fmt.Sprint(keyvals[i+1])
		default:
			fields = append(fields, F(key, keyvals[i+1]))
		}
	}
	return k.logger.Log(lvl, msg, fields...)
}
