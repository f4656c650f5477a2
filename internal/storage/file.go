package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nikitkaralius/weeklypoll/internal/models"
)

const (
	SettingsFile = "settings.json"
	VotesFile    = "votes.json"
)

// FileStore keeps settings and votes as two JSON documents in Dir.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) LoadSettings(_ context.Context) (models.Settings, error) {
	var st models.Settings
	if err := readJSON(filepath.Join(s.Dir, SettingsFile), &st); err != nil {
		return models.Settings{}, err
	}
	return st, nil
}

func (s *FileStore) SaveSettings(_ context.Context, st models.Settings) error {
	return writeJSON(filepath.Join(s.Dir, SettingsFile), st)
}

func (s *FileStore) LoadVotes(_ context.Context) (models.Votes, error) {
	votes := models.Votes{}
	if err := readJSON(filepath.Join(s.Dir, VotesFile), &votes); err != nil {
		return models.Votes{}, err
	}
	if votes == nil {
		votes = models.Votes{}
	}
	return votes, nil
}

// SaveVotes rewrites the whole ledger file; pollID is ignored.
func (s *FileStore) SaveVotes(_ context.Context, votes models.Votes, _ string) error {
	return writeJSON(filepath.Join(s.Dir, VotesFile), votes)
}

// readJSON leaves v untouched when the file does not exist yet.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// writeJSON replaces path atomically: the document goes to a temp file in the
// same directory which is then renamed over the target.
func writeJSON(path string, v any) (err error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
