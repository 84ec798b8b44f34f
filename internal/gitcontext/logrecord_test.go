package gitcontext

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogRecord(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantName    string
		wantEmail   string
		wantDate    string
		wantParents []string
		wantMessage string
	}{
		{
			name:        "root commit with empty parent field",
			raw:         "Jane Doe,jane@x.com,2021-01-01 10:00:00 +0000,\nInitial commit\n",
			wantName:    "Jane Doe",
			wantEmail:   "jane@x.com",
			wantDate:    "2021-01-01 10:00:00 +0000",
			wantParents: []string{},
			wantMessage: "Initial commit\n",
		},
		{
			name:        "single parent",
			raw:         "Jane Doe,jane@x.com,2021-01-01 10:00:00 +0000,abc123\nFix bug\n\nDetails here\n",
			wantName:    "Jane Doe",
			wantEmail:   "jane@x.com",
			wantDate:    "2021-01-01 10:00:00 +0000",
			wantParents: []string{"abc123"},
			wantMessage: "Fix bug\n\nDetails here\n",
		},
		{
			name:        "two parents",
			raw:         "Jane Doe,jane@x.com,2021-01-01 10:00:00 +0000,abc123 def456\nMerge branch 'x'\n",
			wantName:    "Jane Doe",
			wantEmail:   "jane@x.com",
			wantDate:    "2021-01-01 10:00:00 +0000",
			wantParents: []string{"abc123", "def456"},
			wantMessage: "Merge branch 'x'\n",
		},
		{
			name:        "header only, no message",
			raw:         "Jane Doe,jane@x.com,2021-01-01 10:00:00 +0000,abc123",
			wantName:    "Jane Doe",
			wantEmail:   "jane@x.com",
			wantDate:    "2021-01-01 10:00:00 +0000",
			wantParents: []string{"abc123"},
			wantMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLogRecord(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.AuthorName)
			assert.Equal(t, tt.wantEmail, got.AuthorEmail)
			assert.Equal(t, tt.wantDate, got.DateString)
			assert.Equal(t, tt.wantParents, append([]string{}, got.Parents...))
			assert.Equal(t, tt.wantMessage, got.Message)
		})
	}
}

func TestParseLogRecordMalformed(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantFields int
	}{
		{"too few fields", "Jane Doe,jane@x.com\nMessage", 2},
		{"single field", "garbage", 1},
		{"too many fields", "Doe, Jane,jane@x.com,2021-01-01 10:00:00 +0000,abc123\nMessage", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLogRecord(tt.raw)
			require.Error(t, err)

			var malformed *MalformedRecordError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.wantFields, malformed.Fields)
			assert.Contains(t, err.Error(), "malformed commit log record")
		})
	}
}

func TestParseAuthorDate(t *testing.T) {
	got, err := parseAuthorDate("2021-01-01 10:00:00 +0100")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2021, 1, 1, 9, 0, 0, 0, time.UTC)))

	_, offset := got.Zone()
	assert.Equal(t, 3600, offset, "timezone offset must survive parsing")

	_, err = parseAuthorDate("not a date")
	assert.Error(t, err)
}
