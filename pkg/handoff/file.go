package handoff

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/roadtower/pkg/observability"
)

// File is a slot stored as one JSON file in a state directory. Put writes
// through a temporary file and Take claims the file with a rename, so two
// processes never take the same payload.
type File struct {
	dir  string
	name string
	ttl  time.Duration
}

// DefaultDir returns the state directory used when none is configured:
// $XDG_STATE_HOME/roadtower, or ~/.local/state/roadtower.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "roadtower"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", "roadtower"), nil
}

// NewFile creates a file slot in dir, creating the directory if needed. An
// empty dir selects [DefaultDir]; a non-positive ttl disables expiry.
func NewFile(dir, name string, ttl time.Duration) (*File, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if name == "" {
		name = DefaultSlot
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create handoff dir: %w", err)
	}
	return &File{dir: dir, name: name, ttl: ttl}, nil
}

// fileEntry wraps the payload with its expiry.
type fileEntry struct {
	Data      []byte    `json:"data"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Name returns the slot name.
func (f *File) Name() string { return f.name }

// Path returns the file holding the slot's value.
func (f *File) Path() string { return filepath.Join(f.dir, f.name+".json") }

// Put stores data, replacing any previous value.
func (f *File) Put(ctx context.Context, data []byte) error {
	entry := fileEntry{Data: data, StoredAt: time.Now().UTC()}
	if f.ttl > 0 {
		entry.ExpiresAt = entry.StoredAt.Add(f.ttl)
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode handoff entry: %w", err)
	}

	tmp := filepath.Join(f.dir, "."+f.name+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write handoff file: %w", err)
	}
	if err := os.Rename(tmp, f.Path()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write handoff file: %w", err)
	}

	observability.Handoff().OnPut(ctx, BackendFile, f.name, len(data))
	return nil
}

// Take returns the stored value and removes the file. Expired entries count
// as empty; an entry that does not decode fails with ErrCorrupt.
func (f *File) Take(ctx context.Context) ([]byte, error) {
	data, err := f.take()
	observability.Handoff().OnTake(ctx, BackendFile, f.name, err == nil)
	return data, err
}

func (f *File) take() ([]byte, error) {
	claimed := filepath.Join(f.dir, "."+f.name+"."+uuid.NewString()+".taken")
	if err := os.Rename(f.Path(), claimed); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("claim handoff file: %w", err)
	}
	defer os.Remove(claimed)

	raw, err := os.ReadFile(claimed)
	if err != nil {
		return nil, fmt.Errorf("read handoff file: %w", err)
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		return nil, ErrEmpty
	}
	return entry.Data, nil
}

// Clear removes the slot file.
func (f *File) Clear(ctx context.Context) error {
	err := os.Remove(f.Path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for a file slot.
func (f *File) Close() error { return nil }

// Ensure File implements Slot.
var _ Slot = (*File)(nil)
