package gamedata

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// LevelWatcher reloads levels.json from an override directory whenever it
// changes on disk. Successfully parsed registries arrive on Updates; parse
// and watch failures arrive on Errors.
type LevelWatcher struct {
	watcher *fsnotify.Watcher
	dir     string
	Updates chan *LevelRegistry
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchLevels starts watching dir.
func WatchLevels(dir string) (*LevelWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}

	lw := &LevelWatcher{
		watcher: w,
		dir:     dir,
		Updates: make(chan *LevelRegistry, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go lw.run()
	return lw, nil
}

// Close stops watching. Updates and Errors are closed once the watch
// goroutine exits.
func (w *LevelWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *LevelWatcher) run() {
	defer func() {
		close(w.Updates)
		close(w.Errors)
		close(w.done)
	}()

	var last time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Base(event.Name) != "levels.json" {
				continue
			}
			now := time.Now()
			if now.Sub(last) < 100*time.Millisecond {
				continue
			}
			last = now

			registry, err := LoadLevelRegistryFS(os.DirFS(w.dir))
			if err != nil {
				w.send(nil, err)
				continue
			}
			w.send(registry, nil)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			return
		}
	}
}

// send delivers without blocking the watch loop; a newer registry replaces
// one the consumer has not picked up yet.
func (w *LevelWatcher) send(r *LevelRegistry, err error) {
	if err != nil {
		select {
		case w.Errors <- err:
		default:
		}
		return
	}
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- r:
	default:
	}
}
