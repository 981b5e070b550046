package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fieldvault/fieldvault/pkg/codec"
	"github.com/fieldvault/fieldvault/pkg/field"
)

// FileBackendConfig holds configuration for the file backend
type FileBackendConfig struct {
	Dir     string       // Root directory for stored files (required)
	Logger  *slog.Logger // Failure diagnostics sink; slog.Default() if nil
	Metrics *Metrics     // Optional operation counters
}

// FileBackend stores each mapping sequence as one binary file under a fixed
// root directory. Writes are atomic: the blob lands in a temp file in the
// same directory and is renamed over the target, so a reader never observes
// a partially written file and a failed Save leaves any prior file intact.
//
// Failures are logged and surfaced as an error (Save) or an absent result
// (Load); the backend never panics.
type FileBackend struct {
	dir     string
	codec   *codec.MappingCodec
	logger  *slog.Logger
	metrics *Metrics
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend creates a file backend rooted at config.Dir, creating the
// directory if needed.
func NewFileBackend(config FileBackendConfig) (*FileBackend, error) {
	if config.Dir == "" {
		return nil, &StoreError{"file backend requires a directory"}
	}
	if err := os.MkdirAll(config.Dir, 0750); err != nil {
		return nil, fmt.Errorf("create directory %q: %w", config.Dir, err)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &FileBackend{
		dir:     config.Dir,
		codec:   codec.NewMappingCodec(),
		logger:  logger,
		metrics: config.Metrics,
	}, nil
}

// Dir returns the root directory files are stored under
func (b *FileBackend) Dir() string {
	return b.dir
}

// resolve joins name against the root directory. Names must be bare file
// names: no separators, no traversal.
func (b *FileBackend) resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", ErrInvalidName
	}
	return filepath.Join(b.dir, name), nil
}

// Save encodes the mapping sequence and atomically writes it to name under
// the root directory. On failure the error is logged and returned; any file
// previously stored at name is left unchanged.
func (b *FileBackend) Save(name string, mappings []field.Mapping) error {
	err := b.save(name, mappings)
	if err != nil {
		b.logger.Error("file save failed", "name", name, "error", err)
	}
	b.metrics.RecordOperation("file", "save", err == nil)
	return err
}

func (b *FileBackend) save(name string, mappings []field.Mapping) error {
	path, err := b.resolve(name)
	if err != nil {
		return err
	}

	data, err := b.codec.Encode(mappings)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	tmp, err := os.CreateTemp(b.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Load reads and decodes the file stored at name. Any I/O error (including
// file-not-found) and any blob that does not decode as a mapping sequence is
// logged and reported as absent.
func (b *FileBackend) Load(name string) ([]field.Mapping, bool) {
	mappings, err := b.load(name)
	if err != nil {
		b.logger.Error("file load failed", "name", name, "error", err)
		b.metrics.RecordOperation("file", "load", false)
		return nil, false
	}
	b.metrics.RecordOperation("file", "load", true)
	return mappings, true
}

func (b *FileBackend) load(name string) ([]field.Mapping, error) {
	path, err := b.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	mappings, err := b.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return mappings, nil
}
