package model

import (
	"encoding/json"
	"net/mail"
	"strings"
	"time"
)

// Category is the application lifecycle stage assigned to an email by the
// upstream classifier. It is immutable from this program's point of view.
type Category string

const (
	CategoryApplied     Category = "applied"
	CategoryInterviewed Category = "interviewed"
	CategoryOffers      Category = "offers"
	CategoryRejected    Category = "rejected"
	CategoryIrrelevant  Category = "irrelevant"
)

// Categories lists all known categories in display order.
var Categories = []Category{
	CategoryApplied,
	CategoryInterviewed,
	CategoryOffers,
	CategoryRejected,
	CategoryIrrelevant,
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryApplied, CategoryInterviewed, CategoryOffers, CategoryRejected, CategoryIrrelevant:
		return true
	}
	return false
}

// EmailRecord is a classified email as delivered by the backend.
type EmailRecord struct {
	ID       string   `json:"id"`
	ThreadID string   `json:"thread_id,omitempty"`
	From     string   `json:"from"`
	Subject  string   `json:"subject"`
	Date     string   `json:"date"`
	Category Category `json:"category"`
	IsRead   bool     `json:"is_read"`
	Body     string   `json:"body,omitempty"`
	HTMLBody string   `json:"html_body,omitempty"`
}

// UnmarshalJSON accepts both thread_id and threadId spellings, since the
// backend has emitted both over time.
func (e *EmailRecord) UnmarshalJSON(data []byte) error {
	type alias EmailRecord
	aux := struct {
		*alias
		ThreadIDAlt string `json:"threadId,omitempty"`
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if e.ThreadID == "" {
		e.ThreadID = aux.ThreadIDAlt
	}
	return nil
}

// dateFormats are the timestamp layouts the backend has been seen to emit.
var dateFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the record's date field. ok is false when the field is
// missing or unparseable; callers must not let a zero time win date
// comparisons.
func (e EmailRecord) ParseDate() (t time.Time, ok bool) {
	return ParseDate(e.Date)
}

// ParseDate parses a backend timestamp string, trying known layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SenderAddress extracts the bare email address from the raw From header.
// A header that cannot be parsed as an RFC 5322 address degrades to a
// best-effort scan rather than an error.
func (e EmailRecord) SenderAddress() string {
	from := strings.TrimSpace(e.From)
	if from == "" {
		return ""
	}
	if addr, err := mail.ParseAddress(from); err == nil {
		return strings.ToLower(addr.Address)
	}
	// Fall back to the first token that looks like an address.
	if start := strings.LastIndex(from, "<"); start >= 0 {
		if end := strings.Index(from[start:], ">"); end > 0 {
			return strings.ToLower(strings.TrimSpace(from[start+1 : start+end]))
		}
	}
	if strings.Contains(from, "@") {
		for _, tok := range strings.Fields(from) {
			if strings.Contains(tok, "@") {
				return strings.ToLower(strings.Trim(tok, "<>,;\"'"))
			}
		}
	}
	return ""
}

// SenderName extracts the display-name portion of the raw From header, or ""
// when the header carries only an address.
func (e EmailRecord) SenderName() string {
	from := strings.TrimSpace(e.From)
	if from == "" {
		return ""
	}
	if addr, err := mail.ParseAddress(from); err == nil {
		return strings.TrimSpace(addr.Name)
	}
	if idx := strings.Index(from, "<"); idx > 0 {
		return strings.Trim(strings.TrimSpace(from[:idx]), "\"")
	}
	return ""
}

// SenderDomain returns the lowercased domain of the sender address, or ""
// when no address can be extracted.
func (e EmailRecord) SenderDomain() string {
	addr := e.SenderAddress()
	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return ""
	}
	return addr[at+1:]
}

// SenderLocalPart returns the lowercased local part of the sender address.
func (e EmailRecord) SenderLocalPart() string {
	addr := e.SenderAddress()
	at := strings.LastIndex(addr, "@")
	if at <= 0 {
		return ""
	}
	return addr[:at]
}
