package gitexec

import "fmt"

// NotInstalledError means the git executable could not be found on PATH.
// Distinct from RepositoryError: the user has to install git, not fix the
// repository or the invocation.
type NotInstalledError struct{}

func (e *NotInstalledError) Error() string {
	return "'git' command not found. You need to install git to lint a local repository. " +
		"See https://git-scm.com/book/en/v2/Getting-Started-Installing-Git on how to install git."
}

// RepositoryError wraps a non-zero exit from git that is not otherwise
// handled. Msg carries the literal command line and git's trimmed stderr, or
// a clearer message when the path is simply not a git repository.
type RepositoryError struct {
	Msg   string
	Cause error
}

func (e *RepositoryError) Error() string { return e.Msg }

func (e *RepositoryError) Unwrap() error { return e.Cause }

func newRepositoryError(cmdline, stderr string, cause error) *RepositoryError {
	return &RepositoryError{
		Msg:   fmt.Sprintf("An error occurred while executing '%s': %s", cmdline, stderr),
		Cause: cause,
	}
}
