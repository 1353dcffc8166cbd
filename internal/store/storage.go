package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Storage persists and restores the ordered item list as one unit.
//
// Read never fails: missing or undecodable data reads as an empty list.
// Write replaces whatever was stored before and does not report failures;
// implementations log them instead.
type Storage interface {
	Read() []string
	Write(items []string)
}

// ErrUnknownBackend is returned by Open for backend names it does not recognise.
var ErrUnknownBackend = errors.New("unknown backend")

// errNoData marks "nothing persisted yet", as opposed to a corrupt or unreadable blob.
var errNoData = errors.New("no persisted item list")

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Dir      string
	Codec    string
	Compress bool
	Logger   *slog.Logger
}

// Backend is a Storage that also exposes error-returning variants of Read and Write.
// The CLI uses those so a failed save is reported to the user.
type Backend interface {
	Storage
	Load() ([]string, error)
	Save(items []string) error
	Location() string
	Close() error
}

// Open returns the configured backend. Callers must Close it.
func Open(opts Options) (Backend, error) {
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		if strings.TrimSpace(opts.Dir) == "" {
			return nil, errors.New("file backend: missing dir")
		}
		codec, err := CodecByName(opts.Codec, opts.Compress)
		if err != nil {
			return nil, err
		}
		return &FileStore{Dir: opts.Dir, Codec: codec, Logger: logger}, nil
	case BackendSQLite:
		if strings.TrimSpace(opts.Dir) == "" {
			return nil, errors.New("sqlite backend: missing dir")
		}
		return &SQLiteStore{Dir: opts.Dir, Logger: logger}, nil
	case BackendMemory:
		return NewMemStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, opts.Backend)
	}
}

// readOrEmpty implements the Read contract on top of an error-returning loader.
func readOrEmpty(logger *slog.Logger, location string, load func() ([]string, error)) []string {
	items, err := load()
	if err == nil {
		return items
	}
	if errors.Is(err, errNoData) {
		logger.Debug("no persisted item list; starting empty", "location", location)
	} else {
		logger.Warn("discarding unreadable item list; starting empty", "location", location, "error", err)
	}
	return []string{}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
