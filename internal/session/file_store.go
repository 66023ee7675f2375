package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const fileName = "session.json"

// FileStore keeps the session in a single JSON file, written via a temp
// file and rename so a crash mid-save never leaves a torn blob.
type FileStore struct {
	baseDir string
}

func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

func (f *FileStore) Save(s Session) error {
	if err := os.MkdirAll(f.baseDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(&s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	tmp := filepath.Join(f.baseDir, fileName+".tmp")
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(f.baseDir, fileName)); err != nil {
		return fmt.Errorf("rename session: %w", err)
	}
	return nil
}

// Load returns a zero Session when nothing has been persisted yet.
func (f *FileStore) Load() (Session, error) {
	data, err := os.ReadFile(filepath.Join(f.baseDir, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return s, nil
}
