// Package legacy imports the JSON export of the pre-database version of the
// service into the store.
package legacy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/teamup/internal/teamrequest/model"
	"github.com/festy23/teamup/internal/teamrequest/repository"
)

// DefaultPath is where the legacy export is read from, relative to the working directory.
const DefaultPath = "data/requests.json"

// Result summarizes a run.
type Result struct {
	Read       int
	Skipped    int
	Inserted   int
	BackupPath string
}

// Option customizes a Migrator.
type Option func(*Migrator)

// WithPath overrides the export location.
func WithPath(path string) Option {
	return func(m *Migrator) {
		m.path = path
	}
}

// WithClock overrides the time source used for missing updatedAt values and
// the backup suffix.
func WithClock(now func() time.Time) Option {
	return func(m *Migrator) {
		m.now = now
	}
}

// Migrator copies legacy records that are not yet in the store.
type Migrator struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
	path   string
	now    func() time.Time
}

// New creates a migrator writing into repo.
func New(repo repository.Repository, logger *zap.SugaredLogger, opts ...Option) *Migrator {
	m := &Migrator{
		repo:   repo,
		logger: logger,
		path:   DefaultPath,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run performs the import. A missing or empty export, or one whose records
// are all present already, is a successful no-op without a backup. Records
// inserted before a later failure stay in the store.
func (m *Migrator) Run(ctx context.Context) (Result, error) {
	var result Result

	records, err := ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		m.logger.Infow("no legacy export found", "path", m.path)
		return result, nil
	}
	if err != nil {
		return result, err
	}
	if len(records) == 0 {
		m.logger.Infow("legacy export is empty", "path", m.path)
		return result, nil
	}
	result.Read = len(records)
	m.logger.Infow("read legacy export", "path", m.path, "records", len(records))

	now := m.now()
	converted := make([]model.TeamRequest, 0, len(records))
	ids := make([]string, 0, len(records))
	for i, rec := range records {
		req, err := rec.Convert(now)
		if err != nil {
			return result, fmt.Errorf("record %d: %w", i, err)
		}
		converted = append(converted, req)
		ids = append(ids, req.ID)
	}

	existing, err := m.repo.ExistingIDs(ctx, ids)
	if err != nil {
		return result, fmt.Errorf("query existing ids: %w", err)
	}

	fresh := partition(converted, existing)
	result.Skipped = len(converted) - len(fresh)
	if result.Skipped > 0 {
		m.logger.Infow("skipping records already in store", "count", result.Skipped)
	}
	if len(fresh) == 0 {
		m.logger.Infow("all records already exist, nothing to migrate")
		return result, nil
	}

	if err := m.repo.InsertMany(ctx, fresh); err != nil {
		return result, fmt.Errorf("insert %d records: %w", len(fresh), err)
	}
	result.Inserted = len(fresh)
	m.logger.Infow("inserted legacy records", "count", result.Inserted)

	backup, err := backupFile(m.path, m.now())
	if err != nil {
		return result, err
	}
	result.BackupPath = backup
	m.logger.Infow("created backup of legacy export", "path", backup)

	return result, nil
}

// ReadFile decodes the export at path. Blank files and a JSON null decode to no records.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

// partition keeps the requests whose id is not in existing, preserving
// order. Duplicate ids within the export keep their first occurrence.
func partition(reqs []model.TeamRequest, existing []string) []model.TeamRequest {
	skip := make(map[string]struct{}, len(existing)+len(reqs))
	for _, id := range existing {
		skip[id] = struct{}{}
	}

	fresh := make([]model.TeamRequest, 0, len(reqs))
	for _, req := range reqs {
		if _, ok := skip[req.ID]; ok {
			continue
		}
		skip[req.ID] = struct{}{}
		fresh = append(fresh, req)
	}
	return fresh
}

// backupFile copies path to path.bak.<unix millis>. The original is left untouched.
func backupFile(path string, at time.Time) (string, error) {
	backup := fmt.Sprintf("%s.bak.%d", path, at.UnixMilli())

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s for backup: %w", path, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(backup, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create backup %s: %w", backup, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("write backup %s: %w", backup, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close backup %s: %w", backup, err)
	}
	return backup, nil
}
