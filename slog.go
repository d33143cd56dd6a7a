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
	"context"
	"log/slog"
	"runtime"
	"time"
)

// slogHandler adapts a registry to the log/slog Handler contract so the
// standard facility can emit through daiquiri outputs:
//
//	slog.SetDefault(slog.New(reg.SlogHandler("my_module")))
type slogHandler struct {
	reg    *Registry
	name   string
	fields Fields
	groups []string
}

// SlogHandler returns a slog.Handler emitting through the registry under the
// given logger name.
func (r *Registry) SlogHandler(name string) slog.Handler {
	return &slogHandler{reg: r, name: name}
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.reg.enabled(h.name, levelFromSlog(level))
}

func (h *slogHandler) Handle(_ context.Context, sr slog.Record) error {
	rec := &Record{
		Time:    sr.Time,
		Level:   levelFromSlog(sr.Level),
		Name:    h.name,
		Message: sr.Message,
		PID:     pid,
	}
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}

	prefix := ""
	for _, g := range h.groups {
		prefix += g + "."
	}
	extra := make(Fields, 0, sr.NumAttrs())
	sr.Attrs(func(a slog.Attr) bool {
		extra = h.appendAttr(extra, a, prefix)
		return true
	})
	rec.Fields = h.fields.merged(extra)

	// A conventional "error" attribute becomes record exception data
	// instead of a generic extra.
	for i, fld := range rec.Fields {
		if fld.Key != "error" {
			continue
		}
		if err, ok := fld.Value.(error); ok {
			rec.Err = err
			rec.Fields = append(rec.Fields[:i:i], rec.Fields[i+1:]...)
		}
		break
	}

	if sr.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{sr.PC}).Next()
		rec.File = frame.File
		rec.Line = frame.Line
		rec.Func = frame.Function
	}
	return h.reg.emit(rec)
}

// appendAttr flattens an attribute into fields, joining group names with
// dots the way nested JSON keys usually flatten.
func (h *slogHandler) appendAttr(fields Fields, a slog.Attr, prefix string) Fields {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}
		for _, member := range a.Value.Group() {
			fields = h.appendAttr(fields, member, groupPrefix)
		}
		return fields
	}
	if a.Equal(slog.Attr{}) {
		return fields
	}
	return append(fields, F(prefix+a.Key, a.Value.Any()))
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	extra := make(Fields, 0, len(attrs))
	prefix := ""
	for _, g := range h.groups {
		prefix += g + "."
	}
	for _, a := range attrs {
		extra = h.appendAttr(extra, a, prefix)
	}
	clone.fields = h.fields.merged(extra)
	return &clone
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}
