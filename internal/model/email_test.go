package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalAcceptsBothThreadIDSpellings(t *testing.T) {
	var snake EmailRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":"m1","thread_id":"t1"}`), &snake))
	assert.Equal(t, "t1", snake.ThreadID)

	var camel EmailRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":"m2","threadId":"t2"}`), &camel))
	assert.Equal(t, "t2", camel.ThreadID)

	// snake_case wins when both are present
	var both EmailRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":"m3","thread_id":"a","threadId":"b"}`), &both))
	assert.Equal(t, "a", both.ThreadID)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"rfc3339", "2024-03-01T10:00:00Z", true},
		{"rfc3339 nano", "2024-03-01T10:00:00.123456Z", true},
		{"rfc1123z", "Fri, 01 Mar 2024 10:00:00 +0000", true},
		{"date only", "2024-03-01", true},
		{"datetime", "2024-03-01 10:00:00", true},
		{"empty", "", false},
		{"garbage", "not a date", false},
		{"whitespace", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.False(t, got.IsZero())
			}
		})
	}
}

func TestSenderAddressAndName(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		wantAddr string
		wantName string
	}{
		{"plain address", "jane@acme.com", "jane@acme.com", ""},
		{"display name", "Jane Doe <Jane@Acme.com>", "jane@acme.com", "Jane Doe"},
		{"quoted name", `"Acme Hiring" <no-reply@acme.com>`, "no-reply@acme.com", "Acme Hiring"},
		{"unparseable with angle", "Acme Talent Team <<careers@acme.com>", "careers@acme.com", ""},
		{"empty", "", "", ""},
		{"no address", "Jane Doe", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := EmailRecord{From: tt.from}
			assert.Equal(t, tt.wantAddr, e.SenderAddress())
			if tt.wantName != "" {
				assert.Equal(t, tt.wantName, e.SenderName())
			}
		})
	}
}

func TestSenderDomainAndLocalPart(t *testing.T) {
	e := EmailRecord{From: "Acme <acme@myworkday.com>"}
	assert.Equal(t, "myworkday.com", e.SenderDomain())
	assert.Equal(t, "acme", e.SenderLocalPart())

	empty := EmailRecord{}
	assert.Empty(t, empty.SenderDomain())
	assert.Empty(t, empty.SenderLocalPart())
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.IsValid(), string(c))
	}
	assert.False(t, Category("spam").IsValid())
	assert.False(t, Category("").IsValid())
}
