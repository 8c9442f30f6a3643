// Package ingest loads backend snapshots into the local store. A snapshot
// is the JSON payload the classifier backend produces: a flat array of
// classified email records, optionally wrapped in an {"emails": [...]}
// envelope.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jobtrail/jobtrail/internal/db"
	"github.com/jobtrail/jobtrail/internal/model"
)

// Result summarizes one import run.
type Result struct {
	Imported int
	Skipped  int
}

// Importer validates snapshot records and upserts them into the email store.
type Importer struct {
	emails *db.EmailStore
	logger *log.Logger
}

// NewImporter creates an importer. logger may be nil.
func NewImporter(emails *db.EmailStore, logger *log.Logger) *Importer {
	return &Importer{emails: emails, logger: logger}
}

// ImportFile imports the snapshot at path.
func (i *Importer) ImportFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return i.Import(ctx, f)
}

// Import reads a snapshot and upserts its valid records. Records missing an
// id or carrying an unknown category are skipped with a warning; a snapshot
// that cannot be parsed at all is an error.
func (i *Importer) Import(ctx context.Context, r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read snapshot: %w", err)
	}

	records, err := decodeSnapshot(data)
	if err != nil {
		return Result{}, err
	}

	res := Result{}
	valid := make([]model.EmailRecord, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			res.Skipped++
			i.warnf("ingest: skipping record without id (subject %q)", rec.Subject)
			continue
		}
		if !rec.Category.IsValid() {
			res.Skipped++
			i.warnf("ingest: skipping %s: unknown category %q", rec.ID, rec.Category)
			continue
		}
		valid = append(valid, rec)
	}

	if err := i.emails.UpsertEmails(ctx, valid); err != nil {
		return res, fmt.Errorf("store snapshot: %w", err)
	}
	res.Imported = len(valid)
	return res, nil
}

func decodeSnapshot(data []byte) ([]model.EmailRecord, error) {
	var records []model.EmailRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var envelope struct {
		Emails []model.EmailRecord `json:"emails"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return envelope.Emails, nil
}

func (i *Importer) warnf(format string, args ...interface{}) {
	if i.logger != nil {
		i.logger.Printf(format, args...)
	}
}
