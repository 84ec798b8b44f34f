package gitcontext

import (
	"fmt"
	"strings"
	"time"
)

// authorDateLayout matches git's %ai placeholder, e.g. "2021-01-01 10:00:00 +0000".
const authorDateLayout = "2006-01-02 15:04:05 -0700"

// logRecordFieldCount is the number of comma-separated fields on the header
// line of a log record produced with --pretty=%aN,%aE,%ai,%P%n%B.
const logRecordFieldCount = 4

// MalformedRecordError indicates a log record whose header line did not carry
// the expected field count. It means the tool's output format changed or the
// input is corrupt; it is fatal to the repository context being built.
type MalformedRecordError struct {
	Fields int
	Header string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed commit log record: expected %d comma-separated header fields, got %d in %q",
		logRecordFieldCount, e.Fields, e.Header)
}

// logRecord is the parsed form of one git log record: the four header fields
// plus the raw message text that follows the first newline.
type logRecord struct {
	AuthorName  string
	AuthorEmail string
	DateString  string
	Parents     []string
	Message     string
}

// parseLogRecord splits a raw record into header metadata and message. Only
// the first line is inspected for fields; the rest of the record is the
// commit message, passed through untouched. Author name and email containing
// commas are out of contract for the expected tool output and are not
// defended against.
func parseLogRecord(raw string) (logRecord, error) {
	header, message, _ := strings.Cut(raw, "\n")

	fields := strings.Split(header, ",")
	if len(fields) != logRecordFieldCount {
		return logRecord{}, &MalformedRecordError{Fields: len(fields), Header: header}
	}

	// strings.Fields yields nil for an empty parent field rather than a
	// single empty string, which is what the root commit looks like.
	return logRecord{
		AuthorName:  fields[0],
		AuthorEmail: fields[1],
		DateString:  fields[2],
		Parents:     strings.Fields(fields[3]),
		Message:     message,
	}, nil
}

// parseAuthorDate interprets the header date field. The date string travels
// through parseLogRecord uninterpreted; conversion happens here, at assembly.
func parseAuthorDate(s string) (time.Time, error) {
	return time.Parse(authorDateLayout, s)
}
