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

//go:build !linux

package daiquiri

import (
	"github.com/pkg/errors"
)

// NewJournal always fails on hosts without a systemd journal, at
// configuration time rather than on the first log call.
func NewJournal(cfg JournalConfig, opts ...Option) (Output, error) {
	return nil, errors.New("systemd journal is not available on this host")
}
