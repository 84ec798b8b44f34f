// Package gitcontext builds an immutable, structured view of one or more git
// commits from raw tool output: a commit message split into title and body, a
// parsed log record per commit, and a Context holding the assembled commits.
// It performs no validation and never talks to git itself; repository access
// goes through the Source interface.
package gitcontext

import (
	"fmt"
	"strings"
)

// DefaultCommentChar is the comment leader git uses when core.commentchar is
// not configured.
const DefaultCommentChar = "#"

// CutLine returns the scissor line git inserts into commit message templates
// for the given comment leader. Everything at or after this line is discarded
// when the message is parsed.
func CutLine(commentChar string) string {
	return fmt.Sprintf("%s ------------------------ >8 ------------------------", commentChar)
}

// CommitMessage is a parsed commit message:
//   - Original: the message exactly as handed in, unmodified
//   - Full: Original minus comment lines and anything at/after the cut line
//   - Title: the first line of Full, or "" when Full is empty
//   - Body: the lines of Full after the title
//
// Values are never mutated after construction.
type CommitMessage struct {
	Original string
	Full     string
	Title    string
	Body     []string
}

// ParseMessage splits a raw commit message into its parts, honoring the given
// comment leader. An empty commentChar falls back to DefaultCommentChar.
//
// The cut line is located on the unfiltered line list first: the cut line
// itself starts with the comment leader, so stripping comments before looking
// for it would drop the marker and leak the template text below it.
func ParseMessage(raw, commentChar string) *CommitMessage {
	if commentChar == "" {
		commentChar = DefaultCommentChar
	}
	allLines := splitLines(raw)

	cutLine := CutLine(commentChar)
	for i, line := range allLines {
		if line == cutLine {
			allLines = allLines[:i]
			break
		}
	}

	lines := make([]string, 0, len(allLines))
	for _, line := range allLines {
		if strings.HasPrefix(line, commentChar) {
			continue
		}
		lines = append(lines, line)
	}

	msg := &CommitMessage{
		Original: raw,
		Full:     strings.Join(lines, "\n"),
		Body:     []string{},
	}
	if len(lines) > 0 {
		msg.Title = lines[0]
	}
	if len(lines) > 1 {
		msg.Body = lines[1:]
	}
	return msg
}

// Equal reports structural equality over all four fields.
func (m *CommitMessage) Equal(other *CommitMessage) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Original != other.Original || m.Full != other.Full || m.Title != other.Title {
		return false
	}
	if len(m.Body) != len(other.Body) {
		return false
	}
	for i := range m.Body {
		if m.Body[i] != other.Body[i] {
			return false
		}
	}
	return true
}

func (m *CommitMessage) String() string {
	return m.Full
}

// splitLines splits on "\n" without treating a trailing newline as an extra
// empty line, so "a\nb\n" yields ["a", "b"].
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
