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
	"reflect"
	"testing"
)

func TestFieldsMerged(t *testing.T) {
	tests := []struct {
		name     string
		bound    Fields
		extra    Fields
		expected Fields
	}{
		{
			name:     "both empty",
			expected: nil,
		},
		{
			name:     "append keeps order",
			bound:    Fields{F("a", 1)},
			extra:    Fields{F("b", 2), F("c", 3)},
			expected: Fields{F("a", 1), F("b", 2), F("c", 3)},
		},
		{
			name:     "call-site overrides bound in place",
			bound:    Fields{F("a", 1), F("b", 2)},
			extra:    Fields{F("a", 9)},
			expected: Fields{F("a", 9), F("b", 2)},
		},
		{
			name:     "no bound fields",
			extra:    Fields{F("a", 1)},
			expected: Fields{F("a", 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := tt.bound.merged(tt.extra)
			if !reflect.DeepEqual(merged, tt.expected) {
				t.Errorf("expected %v, found %v", tt.expected, merged)
			}
		})
	}
}

func TestFieldsMergedDoesNotMutateBound(t *testing.T) {
	bound := Fields{F("a", 1)}
	bound.merged(Fields{F("a", 2), F("b", 3)})
	if bound[0].Value != 1 {
		t.Errorf("expected the bound fields to be left unchanged, found %v", bound)
	}
}
