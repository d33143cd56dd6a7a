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
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// watchedFile appends to a log file and reopens it after an external tool
// (logrotate and friends) moves or deletes it. The parent directory is
// watched so the watch survives the rename of the file itself; a rotation
// only flips a flag and the reopen happens on the next write.
type watchedFile struct {
	path    string
	watcher *fsnotify.Watcher
	reopen  atomic.Bool
	done    chan struct{}

	mu sync.Mutex
	f  *os.File
}

func openWatchedFile(path string) (*watchedFile, error) {
	f, err := openAppend(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		f.Close()
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		f.Close()
		return nil, err
	}

	w := &watchedFile{
		path:    path,
		watcher: watcher,
		done:    make(chan struct{}),
		f:       f,
	}
	go w.watch()
	return w, nil
}

func openAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
}

func (w *watchedFile) watch() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				w.reopen.Store(true)
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// A broken watch must not break logging; the file
			// simply stops tracking external rotation.
		}
	}
}

func (w *watchedFile) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.reopen.CompareAndSwap(true, false) {
		if f, err := openAppend(w.path); err == nil {
			w.f.Close()
			w.f = f
		}
	}
	return w.f.Write(p)
}

func (w *watchedFile) Close() error {
	err := w.watcher.Close()
	<-w.done

	w.mu.Lock()
	defer w.mu.Unlock()
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	return err
}
