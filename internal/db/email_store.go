package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jobtrail/jobtrail/internal/model"
)

// EmailStore provides persistence for classified email records on top of Store
type EmailStore struct {
	store *Store
}

// NewEmailStore creates an email store backed by the shared database
func NewEmailStore(store *Store) *EmailStore {
	return &EmailStore{store: store}
}

// UpsertEmails inserts or replaces a batch of records in one transaction
func (s *EmailStore) UpsertEmails(ctx context.Context, emails []model.EmailRecord) error {
	if s == nil || s.store == nil || s.store.db == nil {
		return fmt.Errorf("email store unavailable")
	}
	if len(emails) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT OR REPLACE INTO emails (id, thread_id, sender, subject, date, category, is_read, body, html_body, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, e := range emails {
		if _, err := stmt.ExecContext(ctx, e.ID, e.ThreadID, e.From, e.Subject, e.Date,
			string(e.Category), e.IsRead, e.Body, e.HTMLBody, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert email %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// ListEmails returns stored records, optionally filtered by category. The
// textual date column is returned as-is; ordering by conversation recency is
// the grouper's job.
func (s *EmailStore) ListEmails(ctx context.Context, category model.Category) ([]model.EmailRecord, error) {
	if s == nil || s.store == nil || s.store.db == nil {
		return nil, fmt.Errorf("email store unavailable")
	}

	query := `SELECT id, COALESCE(thread_id, ''), sender, subject, date, category, is_read,
	                 COALESCE(body, ''), COALESCE(html_body, '')
	          FROM emails`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY date DESC, id ASC`

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	defer rows.Close()

	var out []model.EmailRecord
	for rows.Next() {
		var e model.EmailRecord
		var cat string
		if err := rows.Scan(&e.ID, &e.ThreadID, &e.From, &e.Subject, &e.Date, &cat,
			&e.IsRead, &e.Body, &e.HTMLBody); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		e.Category = model.Category(cat)
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountByCategory returns raw message counts per category
func (s *EmailStore) CountByCategory(ctx context.Context) (map[model.Category]int, error) {
	if s == nil || s.store == nil || s.store.db == nil {
		return nil, fmt.Errorf("email store unavailable")
	}

	rows, err := s.store.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM emails GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.Category]int)
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[model.Category(cat)] = n
	}
	return counts, rows.Err()
}

// MarkRead flags the given message ids as read
func (s *EmailStore) MarkRead(ctx context.Context, ids []string) error {
	if s == nil || s.store == nil || s.store.db == nil {
		return fmt.Errorf("email store unavailable")
	}
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mark read: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `UPDATE emails SET is_read = TRUE, updated_at = ? WHERE id = ?`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare mark read: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, now, id); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("mark read %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// DeleteAll removes every stored email, used before re-importing a snapshot
func (s *EmailStore) DeleteAll(ctx context.Context) error {
	if s == nil || s.store == nil || s.store.db == nil {
		return fmt.Errorf("email store unavailable")
	}
	if _, err := s.store.db.ExecContext(ctx, `DELETE FROM emails`); err != nil {
		return fmt.Errorf("delete emails: %w", err)
	}
	return nil
}
