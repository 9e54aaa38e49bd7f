// Package session hands a canvas over to a freshly started editor through a
// single-slot file. Reading the slot empties it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DefaultMaxBytes bounds the serialised payload when no limit is configured.
const DefaultMaxBytes = 5 << 20

const slotName = "clone.json"

var (
	// ErrTooLarge reports a clone payload over the store limit.
	ErrTooLarge = errors.New("canvas too big to clone")
	// ErrNoClone reports an empty slot.
	ErrNoClone = errors.New("no clone pending")
)

// Clone is the serialised canvas.
type Clone struct {
	ID           string `json:"id,omitempty"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	ImageDataURL string `json:"imageDataUrl"`
}

// Store is the single-slot clone file in Dir.
type Store struct {
	Dir      string
	MaxBytes int64
}

// NewStore returns a store rooted at dir. A non-positive maxBytes selects
// DefaultMaxBytes.
func NewStore(dir string, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{Dir: dir, MaxBytes: maxBytes}
}

// DefaultDir is where clones are handed over when no directory is configured.
func DefaultDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "clippaint")
	}
	return filepath.Join(os.TempDir(), "clippaint")
}

// Path returns the slot file location.
func (s *Store) Path() string { return filepath.Join(s.Dir, slotName) }

// Put writes c into the slot, replacing any previous clone, and returns the
// clone id. Nothing is written when the payload exceeds MaxBytes.
func (s *Store) Put(c Clone) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode clone: %w", err)
	}
	if s.MaxBytes > 0 && int64(len(data)) > s.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), s.MaxBytes)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create clone dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.Dir, slotName+".*")
	if err != nil {
		return "", fmt.Errorf("create clone file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write clone: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write clone: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("store clone: %w", err)
	}
	return c.ID, nil
}

// Take reads and removes the pending clone.
func (s *Store) Take() (Clone, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return Clone{}, ErrNoClone
	}
	if err != nil {
		return Clone{}, fmt.Errorf("read clone: %w", err)
	}
	if err := os.Remove(s.Path()); err != nil {
		return Clone{}, fmt.Errorf("remove clone: %w", err)
	}
	var c Clone
	if err := json.Unmarshal(data, &c); err != nil {
		return Clone{}, fmt.Errorf("decode clone: %w", err)
	}
	if c.Width < 0 || c.Height < 0 {
		return Clone{}, fmt.Errorf("decode clone: invalid size %dx%d", c.Width, c.Height)
	}
	return c, nil
}
