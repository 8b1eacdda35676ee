// Package jsonfile implements the raw review store on top of a single JSON
// array file. The file is the system of record: approval updates mutate the
// matching record in place and every other byte of the record is preserved.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/domain"
)

type Store struct {
	path string
	mu   sync.RWMutex
}

func New(path string) *Store { return &Store{path: path} }

func (s *Store) Path() string { return s.path }

func (s *Store) ReadAll(ctx context.Context) ([]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readLocked()
}

func (s *Store) WriteAll(ctx context.Context, records []map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(records)
}

// UpdateApproval runs the whole read-parse-mutate-serialize-write cycle
// under the store lock so concurrent approvals cannot lose updates.
func (s *Store) UpdateApproval(ctx context.Context, id string, approved bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readLocked()
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	idx := -1
	for i, rec := range records {
		if rec != nil && recordID(rec) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	records[idx]["approved"] = approved
	if err := s.writeLocked(records); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) readLocked() ([]map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		err = fmt.Errorf("%w: read %s: %v", domain.ErrSourceIO, s.path, err)
		log.Error().Err(err).Msg("dataset read failed")
		return nil, err
	}
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		err = fmt.Errorf("%w: parse %s: %v", domain.ErrSourceIO, s.path, err)
		log.Error().Err(err).Msg("dataset parse failed")
		return nil, err
	}
	return records, nil
}

// writeLocked serializes to a sibling temp file and renames it over the
// dataset, so readers never observe a half-written file.
func (s *Store) writeLocked(records []map[string]any) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrSourceIO, s.path, err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".reviews-*.json")
	if err != nil {
		return fmt.Errorf("%w: stage %s: %v", domain.ErrSourceIO, s.path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: stage %s: %v", domain.ErrSourceIO, s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: stage %s: %v", domain.ErrSourceIO, s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %v", domain.ErrSourceIO, s.path, err)
	}
	return nil
}

// recordID renders a raw record's id field the way the normalizer does, so
// lookups by canonical id land on the right record.
func recordID(rec map[string]any) string {
	switch v := rec["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
