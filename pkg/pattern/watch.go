package pattern

import (
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/fsnotify.v1"
)

// CheckResult is the outcome of re-validating one rule file.
type CheckResult struct {
	Path    string
	Removed bool
	Rule    *RuleFile
	Err     error
}

// Watcher re-validates rule files in a directory whenever they change.
type Watcher struct {
	dir      string
	onChange func(CheckResult)
	logger   *slog.Logger

	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher creates a watcher for dir. onChange is called from the
// watcher's goroutine for every create, write, remove or rename of a YAML
// file.
func NewWatcher(dir string, onChange func(CheckResult), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		dir:      dir,
		onChange: onChange,
		logger:   logger,
	}
}

// Start begins watching the directory.
func (w *Watcher) Start() error {
	if w.dir == "" {
		return fmt.Errorf("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching directory %s: %w", w.dir, err)
	}

	w.watcher = watcher
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.watchLoop()

	return nil
}

// watchLoop handles file system events.
func (w *Watcher) watchLoop() {
	defer close(w.done)

	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !IsRuleFileName(event.Name) {
				continue
			}

			switch {
			case event.Op&fsnotify.Create == fsnotify.Create,
				event.Op&fsnotify.Write == fsnotify.Write:
				w.check(event.Name)

			case event.Op&fsnotify.Remove == fsnotify.Remove,
				event.Op&fsnotify.Rename == fsnotify.Rename:
				w.logger.Info("rule file removed", "path", event.Name)
				w.emit(CheckResult{Path: event.Name, Removed: true})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("rule watcher error", "dir", w.dir, "err", err)
		}
	}
}

func (w *Watcher) check(path string) {
	rf, err := LoadFile(path)
	if err != nil {
		w.logger.Warn("rule file rejected", "path", path, "err", err)
	} else {
		w.logger.Info("rule file ok", "path", path, "id", rf.ID)
	}
	w.emit(CheckResult{Path: path, Rule: rf, Err: err})
}

func (w *Watcher) emit(res CheckResult) {
	if w.onChange != nil {
		w.onChange(res)
	}
}

// Stop stops watching and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		if w.stopChan != nil {
			close(w.stopChan)
		}
		if w.watcher != nil {
			w.watcher.Close()
		}
		if w.done != nil {
			<-w.done
		}
	})
}
