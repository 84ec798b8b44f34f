package gitexec

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shaPattern = regexp.MustCompile(`^[0-9a-f]{40,64}$`)

func TestRepoOperations(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")

	createFile(t, dir, "README.md", "hello")
	createFile(t, dir, "pkg/util.go", "package pkg")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Initial commit\n\nSome details")

	repo := Open(dir)

	t.Run("version", func(t *testing.T) {
		version, err := repo.Version(ctx)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(version, "git version"))
		assert.NotContains(t, version, "\n")
	})

	t.Run("comment char defaults to hash", func(t *testing.T) {
		char, err := repo.CommentChar(ctx)
		require.NoError(t, err)
		assert.Equal(t, "#", char)
	})

	t.Run("comment char honors config", func(t *testing.T) {
		runGit(t, dir, "config", "core.commentchar", ";")
		defer runGit(t, dir, "config", "--unset", "core.commentchar")

		char, err := repo.CommentChar(ctx)
		require.NoError(t, err)
		assert.Equal(t, ";", char)
	})

	t.Run("latest commit sha", func(t *testing.T) {
		sha, err := repo.LatestCommitSHA(ctx)
		require.NoError(t, err)
		assert.Regexp(t, shaPattern, sha)
	})

	t.Run("log record shape", func(t *testing.T) {
		sha, err := repo.LatestCommitSHA(ctx)
		require.NoError(t, err)

		record, err := repo.LogRecord(ctx, sha)
		require.NoError(t, err)

		header, message, found := strings.Cut(record, "\n")
		require.True(t, found)
		assert.True(t, strings.HasPrefix(header, "Test User,test@example.com,"))
		assert.Equal(t, 4, len(strings.Split(header, ",")), "header must carry exactly four fields")
		assert.True(t, strings.HasSuffix(header, ","), "root commit has an empty parent field")
		assert.Contains(t, message, "Initial commit")
		assert.Contains(t, message, "Some details")
	})

	t.Run("changed files", func(t *testing.T) {
		sha, err := repo.LatestCommitSHA(ctx)
		require.NoError(t, err)

		files, err := repo.ChangedFiles(ctx, sha)
		require.NoError(t, err)
		assert.Contains(t, files, "README.md")
		assert.Contains(t, files, "pkg/util.go")
	})

	t.Run("rev-list", func(t *testing.T) {
		createFile(t, dir, "second.txt", "more")
		runGit(t, dir, "add", ".")
		runGit(t, dir, "commit", "-m", "Second commit")

		shas, err := repo.RevList(ctx, "HEAD")
		require.NoError(t, err)
		require.Len(t, shas, 2)
		for _, sha := range shas {
			assert.Regexp(t, shaPattern, sha)
		}

		latest, err := repo.LatestCommitSHA(ctx)
		require.NoError(t, err)
		assert.Equal(t, latest, shas[0], "rev-list order is newest first")
	})
}

func TestRepoNotARepository(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo := Open(dir)
	_, err := repo.LatestCommitSHA(ctx)
	require.Error(t, err)

	var repoErr *RepositoryError
	require.True(t, errors.As(err, &repoErr))
	assert.Contains(t, err.Error(), dir)
	assert.Contains(t, err.Error(), "is not a git repository")
}

func TestRepoBadRefspec(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
	createFile(t, dir, "a.txt", "a")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Initial commit")

	repo := Open(dir)
	_, err := repo.RevList(ctx, "no-such-ref")
	require.Error(t, err)

	var repoErr *RepositoryError
	require.True(t, errors.As(err, &repoErr))
	assert.Contains(t, err.Error(), "git rev-list no-such-ref", "diagnostic carries the literal command")
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
}

func createFile(t *testing.T, dir, path, content string) {
	t.Helper()
	fullPath := filepath.Join(dir, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	require.NoError(t, os.WriteFile(fullPath, []byte(content), 0644))
}
