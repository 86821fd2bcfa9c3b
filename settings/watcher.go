package settings

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/mobile-next/facepointer/utils"
)

// Watcher reloads a Store whenever its file is rewritten and hands the fresh
// store to a callback.
type Watcher struct {
	store    *Store
	onChange func(*Store)
	watcher  *fsnotify.Watcher
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// Watch starts watching the store's file. The directory is watched rather
// than the file so editors that replace the file are picked up too.
func Watch(store *Store, onChange func(*Store)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(store.Path())); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", store.Path(), err)
	}

	w := &Watcher{
		store:    store,
		onChange: onChange,
		watcher:  fw,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.watchLoop()
	return w, nil
}

func (w *Watcher) watchLoop() {
	defer w.wg.Done()
	target := filepath.Clean(w.store.Path())

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.store.Reload(); err != nil {
				utils.Warn("settings reload failed: %v", err)
				continue
			}
			utils.Info("settings reloaded from %s", target)
			if w.onChange != nil {
				w.onChange(w.store)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			utils.Warn("settings watcher error: %v", err)
		}
	}
}

// Close stops watching and waits for the loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
