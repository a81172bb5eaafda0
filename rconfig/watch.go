/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package rconfig

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/rlog"
)

// Watcher reloads a Config whenever its backing file changes on disk and
// hands the new value (or the reload error) to the registered callback.
// Editors and config-management tools commonly replace a file by renaming a
// temporary one over it, so Watcher watches the containing directory and
// filters events down to the one path it cares about, rather than relying
// on inotify to follow the original inode.
type Watcher struct {
	w    *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching path for changes. onChange is invoked, from an
// internal goroutine, with the freshly loaded Config on every write/create
// event that touches path, or with a non-nil error if the reload failed
// (the previous Config is left in place by the caller in that case).
func Watch(path string, log rlog.FuncLog, onChange func(*Config, error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, rerr.Wrap(rerr.KindIO, "rconfig: create file watcher", err)
	}

	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, rerr.Wrap(rerr.KindIO, "rconfig: watch configuration directory", err)
	}

	w := &Watcher{w: fw, done: make(chan struct{})}
	target := filepath.Clean(path)

	go func() {
		defer close(w.done)
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := LoadFile(path)
				if err != nil {
					rlog.Call(log).Warn("rconfig: reload failed: ", err)
					onChange(nil, err)
					continue
				}
				onChange(cfg, nil)
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				rlog.Call(log).Warn("rconfig: watcher error: ", err)
			}
		}
	}()

	return w, nil
}

// Close stops the watcher and releases its underlying file descriptor.
func (w *Watcher) Close() error {
	err := w.w.Close()
	<-w.done
	return err
}
