package storage

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/formpulse/survey-intake-backend/internal/models"
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// FileStore persists records as newline-delimited JSON, one record per
// line, appended to the end of a single file. There is no index and no
// locking: dedupe is a full linear scan before each append, so two
// writers racing on the same tuple can both pass the scan and append.
// The sqlite backend closes that window.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the NDJSON file at path. The
// file and its parent directory are created on first append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

var errDuplicateFound = errors.New("duplicate record found")

func (s *FileStore) AppendIfNew(ctx context.Context, rec *models.StorageRecord) (bool, error) {
	err := s.Each(ctx, func(existing *models.StorageRecord) error {
		if rec.DuplicateOf(existing) {
			return errDuplicateFound
		}
		return nil
	})
	if errors.Is(err, errDuplicateFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return false, errors.Wrap(err, "create data directory")
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return false, errors.Wrap(err, "encode record")
	}
	line = append(line, '\n')

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, errors.Wrap(err, "open data file")
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return false, errors.Wrap(err, "append record")
	}
	return true, nil
}

func (s *FileStore) Each(ctx context.Context, fn func(*models.StorageRecord) error) error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "open data file")
	}
	defer f.Close()

	// No line cap: a record line is as long as its accepted fields,
	// and every appended record must stay readable by the dedupe scan.
	r := bufio.NewReader(f)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, readErr := r.ReadBytes('\n')

		if line = bytes.TrimSpace(line); len(line) > 0 {
			var rec models.StorageRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				return errors.Wrap(err, "decode record")
			}
			if err := fn(&rec); err != nil {
				return err
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return errors.Wrap(readErr, "read data file")
		}
	}
}

func (s *FileStore) Close() error {
	return nil
}
