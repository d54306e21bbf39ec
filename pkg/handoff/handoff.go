// Package handoff passes one roadmap payload from the code that fetched it to
// the code that renders it.
//
// A [Slot] is a single named cell. [Slot.Put] stores a payload, replacing any
// value left behind by an abandoned cycle. [Slot.Take] reads the payload and
// clears the slot in one step, so every payload is rendered at most once.
//
// Backends:
//   - memory: a buffered channel of one, for a single process
//   - file: one file under a state directory, for CLI commands that run as
//     separate processes
//   - redis: SET with a TTL and GETDEL, for servers running several instances
//
// # Usage
//
//	slot, err := handoff.Open(ctx, handoff.Config{Backend: handoff.BackendFile})
//	if err != nil {
//	    return err
//	}
//	defer slot.Close()
//
//	_ = slot.Put(ctx, payload)
//	data, err := slot.Take(ctx)
//	if errors.Is(err, handoff.ErrEmpty) {
//	    // nothing to render
//	}
package handoff

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultSlot is the name of the slot the controller writes to.
const DefaultSlot = "roadmapData"

// DefaultTTL bounds how long an untaken payload survives in backends that
// support expiry.
const DefaultTTL = time.Hour

// ErrEmpty is returned by Take when the slot holds no payload.
var ErrEmpty = errors.New("handoff slot is empty")

// ErrCorrupt is returned by Take when the slot held an entry that could not
// be decoded. The entry is discarded.
var ErrCorrupt = errors.New("handoff slot entry is unreadable")

// Slot is a single-value, take-once store.
type Slot interface {
	// Name returns the slot name.
	Name() string

	// Put stores data, replacing any previous value.
	Put(ctx context.Context, data []byte) error

	// Take returns the stored value and clears the slot. It returns ErrEmpty
	// when nothing is stored.
	Take(ctx context.Context) ([]byte, error)

	// Clear discards any stored value.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config selects and configures a slot backend.
type Config struct {
	Backend string
	Name    string        // slot name, DefaultSlot when empty
	TTL     time.Duration // expiry for file and redis slots, DefaultTTL when zero

	Dir string // file backend: state directory, see DefaultDir

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open creates the slot described by cfg. An empty backend selects memory.
func Open(ctx context.Context, cfg Config) (Slot, error) {
	if cfg.Name == "" {
		cfg.Name = DefaultSlot
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}

	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemory(cfg.Name), nil
	case BackendFile:
		return NewFile(cfg.Dir, cfg.Name, cfg.TTL)
	case BackendRedis:
		return NewRedis(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Name:     cfg.Name,
			TTL:      cfg.TTL,
		})
	default:
		return nil, fmt.Errorf("unknown handoff backend %q (want %s, %s or %s)",
			cfg.Backend, BackendMemory, BackendFile, BackendRedis)
	}
}
