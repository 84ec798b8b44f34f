package gitcontext

import (
	"context"
	"fmt"

	"github.com/msglint/msglint/internal/gitexec"
)

// Source is the slice of the version-control tool the repository builder
// needs. *gitexec.Repo satisfies it; tests substitute a fake.
type Source interface {
	// CommentChar returns the configured comment leader, or DefaultCommentChar
	// when none is configured.
	CommentChar(ctx context.Context) (string, error)
	// LatestCommitSHA returns the sha of the single most recent commit.
	LatestCommitSHA(ctx context.Context) (string, error)
	// RevList returns the shas the tool reports for refspec, in tool order.
	RevList(ctx context.Context, refspec string) ([]string, error)
	// LogRecord returns the header+message record for one commit.
	LogRecord(ctx context.Context, sha string) (string, error)
	// ChangedFiles returns the paths touched by one commit.
	ChangedFiles(ctx context.Context, sha string) ([]string, error)
}

// Context is an ordered sequence of commits resolved from one source, the
// unit handed to downstream rule evaluation. Read-only once built; no commit
// is shared between two Contexts.
type Context struct {
	Commits []*Commit
}

// Equal reports structural equality over the commit sequence.
func (c *Context) Equal(other *Context) bool {
	if c == nil || other == nil {
		return c == other
	}
	if len(c.Commits) != len(other.Commits) {
		return false
	}
	for i := range c.Commits {
		if !c.Commits[i].Equal(other.Commits[i]) {
			return false
		}
	}
	return true
}

// Builder constructs Contexts. The zero value uses DefaultCommentChar for
// bare messages, a lazily resolved comment char for repositories, and
// TitleSaysMerge as the bare-message merge heuristic.
type Builder struct {
	// CommentChar overrides the comment leader. When empty, FromMessage uses
	// DefaultCommentChar and FromRepository asks the source.
	CommentChar string
	// MergeHeuristic overrides merge detection for commits built from a bare
	// message. Repository-built commits always use HasMultipleParents.
	MergeHeuristic MergeHeuristic
}

// FromMessage builds a Context holding exactly one commit from a raw commit
// message string. The commit has no sha, author, date, parents or changed
// files. Any input succeeds, including the empty string.
func (b Builder) FromMessage(raw string) *Context {
	heuristic := b.MergeHeuristic
	if heuristic == nil {
		heuristic = TitleSaysMerge
	}

	msg := ParseMessage(raw, b.CommentChar)
	return &Context{
		Commits: []*Commit{{
			Message:       msg,
			IsMergeCommit: heuristic(msg),
		}},
	}
}

// FromRepository builds a Context from a repository source. With an empty
// refspec it resolves the single most recent commit; naive forms like "HEAD"
// or "HEAD^.." break on single-commit repositories and on merge commits, so
// the latest sha is taken explicitly instead. With a refspec it takes every
// sha the tool reports, in tool order.
//
// Any failure while fetching a single commit aborts the whole call; no
// partial Context is ever returned.
func (b Builder) FromRepository(ctx context.Context, src Source, refspec string) (*Context, error) {
	commentChar := b.CommentChar
	if commentChar == "" {
		var err error
		commentChar, err = src.CommentChar(ctx)
		if err != nil {
			return nil, err
		}
	}

	var shas []string
	if refspec == "" {
		sha, err := src.LatestCommitSHA(ctx)
		if err != nil {
			return nil, err
		}
		shas = []string{sha}
	} else {
		var err error
		shas, err = src.RevList(ctx, refspec)
		if err != nil {
			return nil, err
		}
	}

	gctx := &Context{}
	for _, sha := range shas {
		commit, err := b.fetchCommit(ctx, src, sha, commentChar)
		if err != nil {
			return nil, err
		}
		gctx.Commits = append(gctx.Commits, commit)
	}
	return gctx, nil
}

func (b Builder) fetchCommit(ctx context.Context, src Source, sha, commentChar string) (*Commit, error) {
	raw, err := src.LogRecord(ctx, sha)
	if err != nil {
		return nil, err
	}
	record, err := parseLogRecord(raw)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", sha, err)
	}

	date, err := parseAuthorDate(record.DateString)
	if err != nil {
		return nil, fmt.Errorf("commit %s: parsing author date: %w", sha, err)
	}

	changedFiles, err := src.ChangedFiles(ctx, sha)
	if err != nil {
		return nil, err
	}

	return &Commit{
		SHA:           sha,
		Message:       ParseMessage(record.Message, commentChar),
		AuthorName:    record.AuthorName,
		AuthorEmail:   record.AuthorEmail,
		Date:          date,
		Parents:       record.Parents,
		IsMergeCommit: HasMultipleParents(record.Parents),
		ChangedFiles:  changedFiles,
	}, nil
}

// FromCommitMessage builds a single-commit Context from a raw message with
// default settings. Suitable for commit-msg hooks where no repository state
// is wanted.
func FromCommitMessage(raw string) *Context {
	return Builder{}.FromMessage(raw)
}

// FromLocalRepository builds a Context from the git repository at path,
// resolving refspec as FromRepository does. Errors are *gitexec.NotInstalledError,
// *gitexec.RepositoryError or *MalformedRecordError.
func FromLocalRepository(ctx context.Context, path, refspec string) (*Context, error) {
	return Builder{}.FromRepository(ctx, gitexec.Open(path), refspec)
}
