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

//go:build linux

package daiquiri

import (
	"testing"
)

func TestJournalFieldName(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"mood", "MOOD"},
		{"request-id", "REQUEST_ID"},
		{"http.status", "HTTP_STATUS"},
		{"_private", "X_PRIVATE"},
		{"0day", "X0DAY"},
		{"", "X"},
	}

	for _, tt := range tests {
		if found := journalFieldName(tt.key); found != tt.expected {
			t.Errorf("expected %q to map to %q, found %q", tt.key, tt.expected, found)
		}
	}
}
