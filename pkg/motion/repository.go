package motion

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/handik/internal/logging"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

const (
	// Extension is the file extension of animation clips.
	Extension = ".vrma"
	// ManifestName is the optional file holding clip durations.
	ManifestName = "motions.yaml"
	// DefaultDuration is reported for clips whose length is unknown.
	DefaultDuration = 1.0
)

// File is a clip found in the motions folder.
type File struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Instance is the playback state of one clip.
type Instance struct {
	File     File    `json:"file"`
	Duration float64 `json:"duration"`
	Playing  bool    `json:"playing"`
	Loop     bool    `json:"loop"`
	Elapsed  float64 `json:"elapsed"`
}

// Manifest maps clip names to their length in seconds.
type Manifest struct {
	Clips map[string]float64 `yaml:"clips"`
}

// Repository keeps the clips of a folder in most-recently-run order.
type Repository struct {
	dir    string
	logger *slog.Logger

	mu        sync.RWMutex
	files     []File
	instances []*Instance
	loaded    bool
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

func WithRepositoryLogger(logger *slog.Logger) RepositoryOption {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRepository(dir string, opts ...RepositoryOption) *Repository {
	r := &Repository{dir: dir, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load scans the folder and reads the manifest. Instances that survive a
// reload keep their playback state and order.
func (r *Repository) Load() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("read motions folder: %w", err)
	}

	manifest, err := readManifest(filepath.Join(r.dir, ManifestName))
	if err != nil {
		return err
	}

	var files []File
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Extension {
			continue
		}
		path, err := filepath.Abs(filepath.Join(r.dir, e.Name()))
		if err != nil {
			return fmt.Errorf("resolve %s: %w", e.Name(), err)
		}
		files = append(files, File{Name: strings.TrimSuffix(e.Name(), Extension), Path: path})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	r.mu.Lock()
	defer r.mu.Unlock()

	present := make(map[string]bool, len(files))
	var next []*Instance
	// Keep the existing order for clips that are still there.
	for _, inst := range r.instances {
		for _, f := range files {
			if f.Name == inst.File.Name {
				next = append(next, inst)
				present[f.Name] = true
				break
			}
		}
	}
	for _, f := range files {
		if !present[f.Name] {
			next = append(next, &Instance{File: f})
		}
	}
	for _, inst := range next {
		inst.Duration = DefaultDuration
		if d, ok := manifest.Clips[inst.File.Name]; ok && d > 0 {
			inst.Duration = d
		}
	}

	r.files = files
	r.instances = next
	r.loaded = true
	r.logger.Debug("motions loaded", "dir", r.dir, "clips", len(files))
	return nil
}

func readManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}

// Files lists the clips found by the last Load, sorted by name.
func (r *Repository) Files() []File {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]File(nil), r.files...)
}

// Names lists the clip names.
func (r *Repository) Names() []string {
	files := r.Files()
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}

// TryGetDuration returns the clip length, or DefaultDuration and false when
// the clip is unknown or nothing has been loaded yet.
func (r *Repository) TryGetDuration(name string) (float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.loaded {
		return DefaultDuration, false
	}
	if i := r.index(name); i >= 0 {
		return r.instances[i].Duration, true
	}
	return DefaultDuration, false
}

func (r *Repository) index(name string) int {
	for i, inst := range r.instances {
		if inst.File.Name == name {
			return i
		}
	}
	return -1
}

// Run plays a clip from the start and moves it to the front. The clip that
// was third stops, so at most the current and previous clips play.
func (r *Repository) Run(name string, loop bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return false
	}
	i := r.index(name)
	if i < 0 {
		return false
	}

	inst := r.instances[i]
	r.instances = append(r.instances[:i], r.instances[i+1:]...)
	r.instances = append([]*Instance{inst}, r.instances...)
	inst.Playing, inst.Loop, inst.Elapsed = true, loop, 0

	if len(r.instances) > 2 {
		r.instances[2].Playing = false
	}
	return true
}

// Tick advances playing clips. Clips that do not loop stop at their end.
func (r *Repository) Tick(dt float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inst := range r.instances {
		if !inst.Playing {
			continue
		}
		inst.Elapsed += dt
		if inst.Elapsed < inst.Duration {
			continue
		}
		if inst.Loop {
			for inst.Elapsed >= inst.Duration {
				inst.Elapsed -= inst.Duration
			}
		} else {
			inst.Playing = false
		}
	}
}

func (r *Repository) stop(i int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.instances) > i {
		r.instances[i].Playing = false
	}
}

func (r *Repository) StopCurrent() { r.stop(0) }
func (r *Repository) StopPrev() { r.stop(1) }

func (r *Repository) StopAll() {
	r.stop(0)
	r.stop(1)
}

func (r *Repository) peek(i int) (Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.instances) > i {
		return *r.instances[i], true
	}
	return Instance{}, false
}

// Current is the most recently run clip.
func (r *Repository) Current() (Instance, bool) { return r.peek(0) }

// Prev is the clip run before Current.
func (r *Repository) Prev() (Instance, bool) { return r.peek(1) }

// Playing lists the clips currently playing, newest first.
func (r *Repository) Playing() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for _, inst := range r.instances {
		if inst.Playing {
			names = append(names, inst.File.Name)
		}
	}
	return names
}

// Watch reloads the repository when clips or the manifest change, until ctx
// is done. Reload errors go to onError when it is set.
func (r *Repository) Watch(ctx context.Context, onError func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch motions folder: %w", err)
	}

	go func() {
		defer watcher.Close()
		var debounce *time.Timer
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
				name := filepath.Base(event.Name)
				if filepath.Ext(name) != Extension && name != ManifestName {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(100*time.Millisecond, func() {
					if err := r.Load(); err != nil {
						r.logger.Warn("reload motions", "error", err)
						if onError != nil {
							onError(err)
						}
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.logger.Warn("motions watcher", "error", err)
			}
		}
	}()
	return nil
}
