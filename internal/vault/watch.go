// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package vault

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"password-manager/internal/logger"
)

const watchDebounce = 150 * time.Millisecond

// Watch reports changes to the data file until ctx is cancelled, after which
// the returned channel is closed. Bursts of events are coalesced, and a
// pending signal is dropped if the previous one has not been received yet.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	// Editors replace files by renaming, so watch the directory instead of
	// the file itself.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Debug("Watching data file.", "path", s.path)

	name := filepath.Base(s.path)
	changes := make(chan struct{}, 1)

	go func() {
		defer close(changes)
		defer watcher.Close()

		var debounce *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if debounce != nil {
					debounce.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				logger.Debug("Data file changed.", "op", event.Op.String())
				if debounce == nil {
					debounce = time.NewTimer(watchDebounce)
				} else {
					debounce.Reset(watchDebounce)
				}
				fire = debounce.C

			case <-fire:
				fire = nil
				select {
				case changes <- struct{}{}:
				default:
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("File watcher error.", "error", err)
			}
		}
	}()

	return changes, nil
}
