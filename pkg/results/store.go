package results

import (
	"encoding/json"
	"fmt"
	"os"

	"hltvharvest/pkg/logger"
	"hltvharvest/pkg/models"
)

// Store persists the collected result set as a JSON array. Flushes are
// full atomic rewrites so the file is always a complete, re-loadable
// snapshot even if a previous flush was interrupted.
type Store struct {
	path   string
	logger logger.Logger
}

// NewStore creates a result store writing to path
func NewStore(path string, log logger.Logger) *Store {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Store{path: path, logger: log}
}

// LoadAll reads the persisted result set. A missing file yields an
// empty set. A corrupt or partial file is logged and treated as empty;
// corruption never crashes the run.
func (s *Store) LoadAll() []*models.Match {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).Warn("failed to read results file, starting empty")
		}
		return nil
	}

	var matches []*models.Match
	if err := json.Unmarshal(data, &matches); err != nil {
		s.logger.WithError(err).Warn("results file is corrupt, starting empty")
		return nil
	}

	s.logger.InfoWithFields("results loaded", map[string]interface{}{
		"count": len(matches),
	})

	return matches
}

// Flush rewrites the whole result set atomically and durably
func (s *Store) Flush(matches []*models.Match) error {
	if matches == nil {
		matches = []*models.Match{}
	}

	tempPath := s.path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary results file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(matches); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync results file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close results file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace results file: %w", err)
	}

	s.logger.DebugWithFields("results flushed", map[string]interface{}{
		"count": len(matches),
	})

	return nil
}
