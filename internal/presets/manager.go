package presets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/Rorqualx/pisces/internal/metrics"
	"github.com/Rorqualx/pisces/internal/scroll"
	"github.com/Rorqualx/pisces/internal/types"
)

// debounceDelay coalesces bursts of file events into one reload.
const debounceDelay = 100 * time.Millisecond

// ReloadStats contains statistics about preset reloads.
type ReloadStats struct {
	LastReloadTime time.Time
	ReloadCount    int64
	LastError      error
}

// Manager serves presets from the embedded defaults, optionally overridden
// by an external file that can be watched for changes. Reads are lock-free.
type Manager struct {
	embedded     *Presets
	current      atomic.Value // *Presets
	externalPath string
	watcher      *fsnotify.Watcher
	stopCh       chan struct{}
	wg           sync.WaitGroup
	mu           sync.Mutex // Protects reload operations
	stats        ReloadStats
	closed       bool
}

// NewManager creates a Manager.
// If externalPath is empty, only embedded presets are used.
// If hotReload is true and externalPath is set, file changes trigger reloads.
func NewManager(externalPath string, hotReload bool) (*Manager, error) {
	m := &Manager{
		embedded:     Get(),
		externalPath: externalPath,
		stopCh:       make(chan struct{}),
	}
	m.current.Store(m.embedded)

	if externalPath == "" {
		return m, nil
	}

	if err := m.Reload(); err != nil {
		log.Warn().
			Err(err).
			Str("path", externalPath).
			Msg("Failed to load external presets, using embedded defaults")
	} else {
		log.Info().
			Str("path", externalPath).
			Msg("Loaded external presets file")
	}

	if hotReload {
		if err := m.startWatcher(); err != nil {
			log.Warn().
				Err(err).
				Str("path", externalPath).
				Msg("Failed to start file watcher, hot-reload disabled")
		} else {
			log.Info().
				Str("path", externalPath).
				Msg("Hot-reload enabled for presets file")
		}
	}

	return m, nil
}

// Get returns the current Presets.
func (m *Manager) Get() *Presets {
	return m.current.Load().(*Presets)
}

// Resolve returns the controller options for the named preset.
func (m *Manager) Resolve(name string) ([]scroll.Option, error) {
	p, ok := m.Get().Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownPreset, name)
	}
	return p.Options()
}

// Reload re-reads the external file. On failure the previous presets stay
// in use.
func (m *Manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.externalPath == "" {
		return fmt.Errorf("no external presets path configured")
	}

	err := m.loadExternalLocked()
	if err != nil {
		m.stats.LastError = err
		metrics.RecordPresetReload("failure")
		return err
	}
	metrics.RecordPresetReload("success")
	return nil
}

// Stats returns the current reload statistics.
func (m *Manager) Stats() ReloadStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Close stops the file watcher. Safe to call multiple times.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	close(m.stopCh)
	m.wg.Wait()

	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}

// loadExternalLocked loads the external file. Must be called with m.mu held.
func (m *Manager) loadExternalLocked() error {
	data, err := os.ReadFile(m.externalPath)
	if err != nil {
		return fmt.Errorf("failed to read presets file: %w", err)
	}

	presets, err := parseAndValidate(data)
	if err != nil {
		return fmt.Errorf("failed to parse presets file: %w", err)
	}

	m.current.Store(m.mergeWithEmbedded(presets))

	m.stats.LastReloadTime = time.Now()
	m.stats.ReloadCount++
	m.stats.LastError = nil

	log.Info().
		Int64("reload_count", m.stats.ReloadCount).
		Int("presets", len(presets.Presets)).
		Msg("Presets reloaded")

	return nil
}

// mergeWithEmbedded overlays external presets on the embedded ones.
// External entries replace embedded entries of the same name.
func (m *Manager) mergeWithEmbedded(external *Presets) *Presets {
	merged := &Presets{Presets: make(map[string]Preset, len(m.embedded.Presets)+len(external.Presets))}
	for name, p := range m.embedded.Presets {
		merged.Presets[name] = p
	}
	for name, p := range external.Presets {
		merged.Presets[name] = p
	}
	return merged
}

// startWatcher watches the directory holding the external file, so the
// file may be created or atomically replaced after startup.
func (m *Manager) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(m.externalPath)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	m.watcher = watcher

	m.wg.Add(1)
	go m.watchFile()

	return nil
}

// watchFile triggers a debounced reload on writes to the external file.
func (m *Manager) watchFile() {
	defer m.wg.Done()

	target := filepath.Clean(m.externalPath)
	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			log.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("Presets file changed")

			if debounceTimer == nil {
				debounceTimer = time.AfterFunc(debounceDelay, m.reloadFromWatch)
			} else {
				debounceTimer.Reset(debounceDelay)
			}

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("File watcher error")

		case <-m.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return
		}
	}
}

func (m *Manager) reloadFromWatch() {
	if err := m.Reload(); err != nil {
		log.Warn().
			Err(err).
			Str("path", m.externalPath).
			Msg("Hot-reload failed, keeping previous presets")
	}
}
