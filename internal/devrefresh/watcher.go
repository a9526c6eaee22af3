package devrefresh

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 200 * time.Millisecond

// Purger drops cached content.
type Purger interface {
	Purge()
}

// Broadcaster pushes a message to connected pages.
type Broadcaster interface {
	Broadcast(msg string) int
}

// Options configures a Watcher.
type Options struct {
	// Dirs are watched recursively. Missing directories are skipped.
	Dirs     []string
	Debounce time.Duration
	Purger   Purger
	Hub      Broadcaster
	Logger   *zap.Logger
}

// Watcher purges the content cache and reloads pages once file changes settle.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	purger   Purger
	hub      Broadcaster
	logger   *zap.Logger

	mu      sync.Mutex
	pending map[string]struct{}
	done    chan struct{}
}

// NewWatcher registers every directory below opts.Dirs with fsnotify.
func NewWatcher(opts Options) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("devrefresh: create watcher: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &Watcher{
		watcher:  fw,
		debounce: debounce,
		purger:   opts.Purger,
		hub:      opts.Hub,
		logger:   logger,
		pending:  make(map[string]struct{}),
		done:     make(chan struct{}),
	}
	for _, dir := range opts.Dirs {
		if err := w.addTree(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Run processes events until ctx is cancelled. It closes the underlying watcher on return.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.done)
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.handle(event) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("devrefresh: watcher error", zap.Error(err))
		case <-timer.C:
			w.flush()
		}
	}
}

// Done is closed once Run has returned.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) handle(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod || isHidden(event.Name) {
		return false
	}
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("devrefresh: watch new directory failed", zap.String("dir", event.Name), zap.Error(err))
			}
		}
	}
	w.mu.Lock()
	w.pending[event.Name] = struct{}{}
	w.mu.Unlock()
	return true
}

func (w *Watcher) flush() {
	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for name := range w.pending {
		changed = append(changed, name)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(changed) == 0 {
		return
	}
	sort.Strings(changed)

	if w.purger != nil {
		w.purger.Purge()
	}
	delivered := 0
	if w.hub != nil {
		delivered = w.hub.Broadcast(ReloadMessage)
	}
	w.logger.Info("devrefresh: content changed",
		zap.Strings("files", changed),
		zap.Int("clients", delivered),
	)
}

func (w *Watcher) addTree(root string) error {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		w.logger.Debug("devrefresh: skipping missing directory", zap.String("dir", root))
		return nil
	}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && isHidden(p) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("devrefresh: watch %s: %w", p, err)
		}
		return nil
	})
}

func isHidden(p string) bool {
	base := filepath.Base(p)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~")
}
