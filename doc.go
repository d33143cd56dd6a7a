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

/*
Package daiquiri provides an easy way to configure logging.

Brief

This library is a convenience layer over logging output configuration: it
wires a set of outputs (stream, file, rotating file, syslog, journald,
Datadog socket) to a single registry, colorizes terminal output per severity,
and renders caller-supplied extra fields into every line.

Usage

	$ go get -u github.com/Mergifyio/daiquiri

Then, import the package:

	import (
		"github.com/Mergifyio/daiquiri"
	)

Example

	reg, err := daiquiri.Setup(&daiquiri.Config{
		Level:       daiquiri.LevelInfo,
		OutputNames: []string{"stderr"},
	})
	if err != nil {
		panic(err)
	}
	defer reg.Close()

	logger := reg.Logger("my_module", daiquiri.F("subsystem", "example"))
	logger.Info("it works and logs to stderr by default with color",
		daiquiri.F("mood", "happy"))
*/
package daiquiri
