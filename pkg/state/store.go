// Package state persists the warning deduplication record.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/costguard/costguard/pkg/models"
)

// Store reads and writes the warning state file. The file is shared by
// every hook invocation; saves are last-writer-wins but atomic, so a
// concurrent writer can lose an advance (re-warning at worst once next
// run) yet can never leave a record the next load cannot parse.
type Store struct {
	Path string
}

// New returns a store backed by the file at path.
func New(path string) *Store {
	return &Store{Path: path}
}

// Load returns the persisted state, or the unset state for the current
// period when the file is missing or corrupt. Corruption degrades to
// "warn again", never to a failed run.
func (s *Store) Load(current models.Period) models.WarningState {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", s.Path).Msg("unreadable warning state, treating as unset")
		}
		return models.Unset(current)
	}

	var st models.WarningState
	if err := json.Unmarshal(data, &st); err != nil {
		log.Warn().Err(err).Str("file", s.Path).Msg("corrupt warning state, treating as unset")
		return models.Unset(current)
	}
	if st.PeriodID == "" {
		return models.Unset(current)
	}
	return st
}

// Save writes the state atomically: marshal to a temp file in the same
// directory, then rename over the target. A reader never observes a
// partial write.
func (s *Store) Save(st models.WarningState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode warning state: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cost_guardrails_state-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write warning state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp state file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace warning state: %w", err)
	}
	return nil
}

// Touch updates only the last-checked timestamp, preserving the warned
// threshold for the current period. Used by the stop hook.
func (s *Store) Touch(current models.Period, now time.Time) error {
	st := s.Load(current)
	st.LastChecked = now
	return s.Save(st)
}
