package gitcontext

import (
	"strings"
	"time"
)

// MergeHeuristic decides whether a commit built from a bare message string is
// a merge commit. Without repository access there is no parent list, so the
// decision can only be guessed from the message itself.
type MergeHeuristic func(msg *CommitMessage) bool

// TitleSaysMerge is the default MergeHeuristic: the title starts with the
// literal "Merge". This is approximate on purpose and known to misfire on
// ordinary commits that happen to start with the word; it is kept as its own
// named strategy so callers can see it and replace it.
func TitleSaysMerge(msg *CommitMessage) bool {
	return strings.HasPrefix(msg.Title, "Merge")
}

// HasMultipleParents is the merge test used when repository data is
// available: a merge commit is a commit with more than one parent.
func HasMultipleParents(parents []string) bool {
	return len(parents) > 1
}

// Commit is one historical commit. SHA is empty and Date is the zero time
// when the commit was built from a bare message string. Commits are
// constructed by a builder and never mutated afterward.
type Commit struct {
	SHA           string
	Message       *CommitMessage
	AuthorName    string
	AuthorEmail   string
	Date          time.Time
	Parents       []string
	IsMergeCommit bool
	ChangedFiles  []string
}

// Equal reports structural equality over all fields. Date comparison uses
// time.Time.Equal so equal instants in different zone representations match.
func (c *Commit) Equal(other *Commit) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.SHA == other.SHA &&
		c.Message.Equal(other.Message) &&
		c.AuthorName == other.AuthorName &&
		c.AuthorEmail == other.AuthorEmail &&
		c.Date.Equal(other.Date) &&
		equalStrings(c.Parents, other.Parents) &&
		c.IsMergeCommit == other.IsMergeCommit &&
		equalStrings(c.ChangedFiles, other.ChangedFiles)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
