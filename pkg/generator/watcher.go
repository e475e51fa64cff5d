package generator

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
)

// WatchAction is what the watcher did for one component file.
type WatchAction string

const (
	WatchGenerated WatchAction = "generated"
	WatchSkipped   WatchAction = "skipped"
	WatchUnchanged WatchAction = "unchanged"
	WatchRemoved   WatchAction = "removed"
	WatchFailed    WatchAction = "failed"
)

// WatchEvent reports one handled change.
type WatchEvent struct {
	Path   string
	Action WatchAction
	Err    error
}

// WatchOptions configure a Watcher.
type WatchOptions struct {
	// Debounce groups bursts of events on the same file. Zero selects 200ms.
	Debounce time.Duration
	// DigestCacheSize bounds the number of remembered file digests. Zero
	// selects 1024.
	DigestCacheSize int
	// OnEvent, when set, is called from the watcher goroutine after every
	// handled change.
	OnEvent func(WatchEvent)
}

// Watcher regenerates fixtures as component files change.
//
// **Features:**
//   - Debouncing: editor save bursts on one file trigger a single regeneration
//   - Digests: a file whose content hash did not change is left alone
//   - Removal: deleting a component file deletes its fixture
//
// All regeneration runs on the watcher's own goroutine, one file at a time.
//
// **Usage:**
//
//	w, err := generator.NewWatcher(gen, generator.WatchOptions{})
//	if err != nil {
//	    return err
//	}
//	if err := w.Start(); err != nil {
//	    return err
//	}
//	defer w.Stop()
type Watcher struct {
	gen     *Generator
	watcher *fsnotify.Watcher
	digests *lru.Cache[string, uint64]
	opts    WatchOptions

	timers   map[string]*time.Timer
	timersMu sync.Mutex
	due      chan string

	stopChan chan struct{}
	done     chan struct{}
	started  bool
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher over the generator's component root.
func NewWatcher(gen *Generator, opts WatchOptions) (*Watcher, error) {
	if opts.Debounce == 0 {
		opts.Debounce = 200 * time.Millisecond
	}
	if opts.DigestCacheSize == 0 {
		opts.DigestCacheSize = 1024
	}

	digests, err := lru.New[string, uint64](opts.DigestCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "create digest cache")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}

	return &Watcher{
		gen:      gen,
		watcher:  fw,
		digests:  digests,
		opts:     opts,
		timers:   make(map[string]*time.Timer),
		due:      make(chan string, 64),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start watches every directory below the component root and begins
// processing events in the background. It may be called once.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return errors.New("watcher already stopped")
	}
	if w.started {
		return errors.New("watcher already started")
	}

	root := w.gen.opts.Dir
	if err := w.addTree(root); err != nil {
		return err
	}

	w.started = true
	go w.loop()
	w.gen.log.Info("watching component tree", "root", root)
	return nil
}

// Stop ends the event loop and releases the file watcher. It is idempotent
// and waits for an in-flight regeneration to finish.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	started := w.started
	close(w.stopChan)
	w.mu.Unlock()

	w.timersMu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = make(map[string]*time.Timer)
	w.timersMu.Unlock()

	err := w.watcher.Close()
	if started {
		<-w.done
	}
	w.gen.log.Info("watcher stopped")
	return err
}

// Pending returns the number of debounced files not yet processed.
func (w *Watcher) Pending() int {
	w.timersMu.Lock()
	defer w.timersMu.Unlock()
	return len(w.timers)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return errors.Wrapf(err, "watch %s", root)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			if path == root {
				return errors.Wrapf(err, "watch %s", root)
			}
			w.gen.log.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case path := <-w.due:
			w.regenerate(path)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.gen.log.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !skipDir(filepath.Base(path)) {
				if err := w.addTree(path); err != nil {
					w.gen.log.Warn("failed to watch new directory", "path", path, "error", err)
				}
			}
			return
		}
	}

	if !w.gen.IsComponentPath(path) {
		return
	}
	w.gen.log.Debug("file event", "op", event.Op.String(), "file", path)

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.cancel(path)
		w.remove(path)
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		w.schedule(path)
	}
}

// schedule (re)arms the file's debounce timer. When it fires the path is
// handed back to the event loop.
func (w *Watcher) schedule(path string) {
	w.timersMu.Lock()
	defer w.timersMu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.opts.Debounce, func() {
		w.timersMu.Lock()
		delete(w.timers, path)
		w.timersMu.Unlock()

		select {
		case w.due <- path:
		case <-w.stopChan:
		}
	})
}

func (w *Watcher) cancel(path string) {
	w.timersMu.Lock()
	defer w.timersMu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Stop()
		delete(w.timers, path)
	}
}

func (w *Watcher) regenerate(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			w.remove(path)
			return
		}
		w.emit(WatchEvent{Path: path, Action: WatchFailed, Err: errors.Wrapf(err, "read %s", path)})
		return
	}

	digest := xxhash.Sum64(data)
	if prev, ok := w.digests.Get(path); ok && prev == digest {
		w.emit(WatchEvent{Path: path, Action: WatchUnchanged})
		return
	}

	res, err := w.gen.GenerateFile(path)
	switch {
	case err != nil:
		w.digests.Remove(path)
		w.gen.out.warn("Failed to process %s: %v\n", path, err)
		w.emit(WatchEvent{Path: path, Action: WatchFailed, Err: err})
	case res.Status == StatusSkipped:
		w.digests.Add(path, digest)
		w.gen.out.skip("Skipping %s: No valid exports found\n", path)
		w.emit(WatchEvent{Path: path, Action: WatchSkipped})
	default:
		w.digests.Add(path, digest)
		w.gen.out.success("Generated: %s\n", res.StoryPath)
		w.emit(WatchEvent{Path: path, Action: WatchGenerated})
	}
}

func (w *Watcher) remove(path string) {
	w.digests.Remove(path)
	storyPath, removed, err := w.gen.RemoveFixture(path)
	switch {
	case err != nil:
		w.gen.out.warn("Failed to delete %s: %v\n", storyPath, err)
		w.emit(WatchEvent{Path: path, Action: WatchFailed, Err: err})
	case removed:
		w.gen.out.success("Deleted: %s\n", storyPath)
		w.emit(WatchEvent{Path: path, Action: WatchRemoved})
	default:
		w.emit(WatchEvent{Path: path, Action: WatchRemoved})
	}
}

func (w *Watcher) emit(e WatchEvent) {
	if w.opts.OnEvent != nil {
		w.opts.OnEvent(e)
	}
}
