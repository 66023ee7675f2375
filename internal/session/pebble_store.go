package session

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"
)

var sessionKey = []byte("pos.session")

// PebbleStore keeps the session blob under a single key in a local
// PebbleDB. Heavier than the file store, but shares the data directory
// with whatever else the terminal persists and survives dirty shutdowns
// through the WAL.
type PebbleStore struct {
	db *pebble.DB
}

func NewPebbleStore(dir string) (*PebbleStore, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleStore{db: d}, nil
}

func (p *PebbleStore) Close() error { return p.db.Close() }

func (p *PebbleStore) Save(s Session) error {
	b, err := json.Marshal(&s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := p.db.Set(sessionKey, b, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set: %w", err)
	}
	return nil
}

func (p *PebbleStore) Load() (Session, error) {
	v, closer, err := p.db.Get(sessionKey)
	if err != nil {
		if err == pebble.ErrNotFound {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("pebble get: %w", err)
	}
	defer closer.Close()
	var s Session
	if err := json.Unmarshal(v, &s); err != nil {
		return Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return s, nil
}
