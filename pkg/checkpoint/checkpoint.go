package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"hltvharvest/pkg/logger"
)

// Checkpoint records harvest progress: the next pagination cursor and
// the set of match ids that have been fully enriched. It is never
// deleted during a run, only overwritten atomically.
type Checkpoint struct {
	Cursor    int             `json:"results_offset"`
	Enriched  map[string]bool `json:"enriched_match_ids"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
	UpdatedAt time.Time       `json:"updated_at,omitempty"`
	Version   int             `json:"version,omitempty"`
}

// New returns a zero-value checkpoint: cursor at the start of the
// listing, nothing enriched.
func New() *Checkpoint {
	return &Checkpoint{
		Cursor:    0,
		Enriched:  make(map[string]bool),
		CreatedAt: time.Now(),
		Version:   1,
	}
}

// MarkEnriched records id as fully enriched
func (c *Checkpoint) MarkEnriched(id string) {
	if c.Enriched == nil {
		c.Enriched = make(map[string]bool)
	}
	c.Enriched[id] = true
}

// IsEnriched checks whether id has been fully enriched
func (c *Checkpoint) IsEnriched(id string) bool {
	return c.Enriched[id]
}

// Manager handles checkpoint persistence
type Manager struct {
	path   string
	logger logger.Logger
}

// NewManager creates a checkpoint manager writing to path
func NewManager(path string, log logger.Logger) *Manager {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Manager{path: path, logger: log}
}

// Load reads the persisted checkpoint. A missing file yields a fresh
// zero-value checkpoint. The file is decoded defensively: missing or
// unknown fields get safe defaults rather than failing the run.
func (m *Manager) Load() (*Checkpoint, error) {
	file, err := os.Open(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Debug("no checkpoint found, starting fresh")
			return New(), nil
		}
		return nil, fmt.Errorf("failed to open checkpoint file: %w", err)
	}
	defer file.Close()

	var cp Checkpoint
	if err := json.NewDecoder(file).Decode(&cp); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint: %w", err)
	}

	if cp.Enriched == nil {
		cp.Enriched = make(map[string]bool)
	}
	if cp.Cursor < 0 {
		cp.Cursor = 0
	}

	m.logger.InfoWithFields("checkpoint loaded", map[string]interface{}{
		"cursor":   cp.Cursor,
		"enriched": len(cp.Enriched),
	})

	return &cp, nil
}

// Save persists the checkpoint atomically: a reader never observes a
// half-written file, and the data is durable before Save returns. A
// failed save is fatal for the calling phase.
func (m *Manager) Save(cp *Checkpoint) error {
	cp.UpdatedAt = time.Now()

	tempPath := m.path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary checkpoint file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cp); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync checkpoint file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close checkpoint file: %w", err)
	}

	if err := os.Rename(tempPath, m.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace checkpoint file: %w", err)
	}

	m.logger.DebugWithFields("checkpoint saved", map[string]interface{}{
		"cursor":   cp.Cursor,
		"enriched": len(cp.Enriched),
	})

	return nil
}

// Exists checks if a checkpoint file exists
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Info returns a summary of the persisted checkpoint, or nil if none
// exists.
func (m *Manager) Info() (map[string]interface{}, error) {
	if !m.Exists() {
		return nil, nil
	}

	cp, err := m.Load()
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"cursor":     cp.Cursor,
		"enriched":   len(cp.Enriched),
		"created_at": cp.CreatedAt,
		"updated_at": cp.UpdatedAt,
		"age":        time.Since(cp.UpdatedAt),
	}, nil
}
