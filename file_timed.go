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
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const archiveTimeLayout = "2006-01-02_15-04-05.000"

// timedRotatingFile appends to a log file and rolls it over once the
// configured interval has elapsed since the previous rollover. A rollover
// renames the current file with a timestamp suffix, reopens a fresh one and
// prunes the oldest archives beyond backupCount. Rotation is checked on
// write, not on a timer, so an idle logger never touches the disk.
type timedRotatingFile struct {
	path        string
	interval    time.Duration
	backupCount int

	mu         sync.Mutex
	f          *os.File
	lastRotate time.Time
}

func openTimedRotatingFile(path string, interval time.Duration, backupCount int) (*timedRotatingFile, error) {
	if interval <= 0 {
		return nil, errors.Errorf("invalid rotation interval %v", interval)
	}
	f, err := openAppend(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open log file %q", path)
	}
	w := &timedRotatingFile{
		path:        path,
		interval:    interval,
		backupCount: backupCount,
		f:           f,
		lastRotate:  time.Now(),
	}
	// Resume the previous schedule when the file already existed.
	if st, err := f.Stat(); err == nil && st.Size() > 0 {
		w.lastRotate = st.ModTime()
	}
	return w, nil
}

func (w *timedRotatingFile) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if time.Since(w.lastRotate) >= w.interval {
		if err := w.rotateLocked(); err != nil {
			return 0, err
		}
	}
	return w.f.Write(p)
}

func (w *timedRotatingFile) rotate() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rotateLocked()
}

func (w *timedRotatingFile) rotateLocked() error {
	if err := w.f.Close(); err != nil {
		return err
	}
	archive := w.path + "." + time.Now().Format(archiveTimeLayout)
	if err := os.Rename(w.path, archive); err != nil && !os.IsNotExist(err) {
		return err
	}
	f, err := openAppend(w.path)
	if err != nil {
		return err
	}
	w.f = f
	w.lastRotate = time.Now()
	w.prune()
	return nil
}

// prune removes the oldest archives beyond backupCount. With a zero
// backupCount every archive is kept, like the original rotating handlers.
func (w *timedRotatingFile) prune() {
	if w.backupCount <= 0 {
		return
	}
	archives, err := filepath.Glob(w.path + ".*")
	if err != nil || len(archives) <= w.backupCount {
		return
	}
	// The timestamp suffix sorts lexically in age order.
	sort.Strings(archives)
	for _, old := range archives[:len(archives)-w.backupCount] {
		os.Remove(old)
	}
}

func (w *timedRotatingFile) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}
