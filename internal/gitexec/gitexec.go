// Package gitexec invokes the git binary for a single repository and returns
// its raw output. Calls are synchronous and blocking, run with the working
// directory pinned to the repository path and with terminal prompting
// disabled. Failures are classified into NotInstalledError and
// RepositoryError; nothing is retried and nothing is logged.
package gitexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Repo invokes git against one repository path. The path is not validated up
// front; a bad path surfaces as a RepositoryError on the first call.
type Repo struct {
	path string
}

// Open returns a Repo pinned to the given repository path.
func Open(path string) *Repo {
	return &Repo{path: path}
}

// Path returns the repository path this Repo is pinned to.
func (r *Repo) Path() string { return r.path }

// run executes git with the given arguments and returns trimmed-right stdout.
// Any non-zero exit is classified: a "not a git repository" complaint becomes
// a RepositoryError naming the path, anything else becomes a RepositoryError
// carrying the literal command line and git's trimmed stderr.
func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	out, _, err := r.exec(ctx, args...)
	return out, err
}

func (r *Repo) exec(ctx context.Context, args ...string) (stdout string, exitCode int, err error) {
	if _, lookErr := exec.LookPath("git"); lookErr != nil {
		return "", -1, &NotInstalledError{}
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.path
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	if runErr := cmd.Run(); runErr != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			code = exitErr.ExitCode()
		}
		stderr := strings.TrimSpace(errBuf.String())
		if strings.Contains(strings.ToLower(stderr), "not a git repository") {
			return "", code, &RepositoryError{
				Msg:   fmt.Sprintf("%s is not a git repository.", r.path),
				Cause: runErr,
			}
		}
		cmdline := "git " + strings.Join(args, " ")
		return "", code, newRepositoryError(cmdline, stderr, runErr)
	}
	return outBuf.String(), 0, nil
}

// Version returns the single-line output of git --version.
func (r *Repo) Version(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(out, "\n"), nil
}

// CommentChar returns the configured core.commentchar, or "#" when the key is
// not set. git signals the missing key with exit status 1 and empty stderr;
// that is the default case, not an error.
func (r *Repo) CommentChar(ctx context.Context) (string, error) {
	out, exitCode, err := r.exec(ctx, "config", "--get", "core.commentchar")
	if err != nil {
		if exitCode == 1 {
			return "#", nil
		}
		return "", err
	}
	return strings.TrimSuffix(out, "\n"), nil
}

// LatestCommitSHA returns the sha of the most recent commit reachable from
// the current position.
func (r *Repo) LatestCommitSHA(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "log", "-1", "--pretty=%H")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RevList returns the commit shas git reports for refspec, in git's order.
func (r *Repo) RevList(ctx context.Context, refspec string) ([]string, error) {
	out, err := r.run(ctx, "rev-list", refspec)
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// LogRecord returns the raw header+message record for one commit: a
// name,email,date,parents header line followed by the full message body.
func (r *Repo) LogRecord(ctx context.Context, sha string) (string, error) {
	return r.run(ctx, "log", sha, "-1", "--pretty=%aN,%aE,%ai,%P%n%B")
}

// ChangedFiles returns the paths touched by one commit.
func (r *Repo) ChangedFiles(ctx context.Context, sha string) ([]string, error) {
	out, err := r.run(ctx, "diff-tree", "--no-commit-id", "--name-only", "-r", sha)
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}
