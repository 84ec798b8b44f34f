// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/msglint/msglint/cmd/msglint/internal/clierr"
	"github.com/msglint/msglint/internal/gitcontext"
	"github.com/msglint/msglint/internal/gitexec"
	"github.com/msglint/msglint/internal/lintconfig"
	"github.com/msglint/msglint/internal/projectroot"
)

// runInspect resolves a commit context and prints it.
func runInspect(cmd *cobra.Command, args []string) error {
	msgFile, _ := cmd.Flags().GetString("msg-file")
	refspec, _ := cmd.Flags().GetString("commits")
	target, _ := cmd.Flags().GetString("target")
	format, _ := cmd.Flags().GetString("format")

	if format != "text" && format != "json" {
		return clierr.New(clierr.CodeUsage, fmt.Sprintf("invalid format: %s (must be 'text' or 'json')", format))
	}

	// 1. Resolve the target repository path
	if target == "" {
		if root, err := projectroot.Find("."); err == nil {
			target = root
		} else {
			target = "."
		}
	}

	// 2. Load file config; flags win over file values
	cfg, err := lintconfig.Load(target)
	if err != nil {
		return clierr.Wrap(clierr.CodeUsage, "loading config", err)
	}
	if refspec == "" {
		refspec = cfg.Refspec
	}
	if target == "." && cfg.Target != "" {
		target = cfg.Target
	}

	// 3. Build the context
	builder := gitcontext.Builder{CommentChar: cfg.CommentChar}

	var gctx *gitcontext.Context
	if msgFile != "" {
		raw, err := readMessage(cmd.InOrStdin(), msgFile)
		if err != nil {
			return clierr.Wrap(clierr.CodeUsage, "reading commit message", err)
		}
		gctx = builder.FromMessage(raw)
	} else {
		gctx, err = builder.FromRepository(cmd.Context(), gitexec.Open(target), refspec)
		if err != nil {
			return clierr.Exit(exitCodeFor(err), err)
		}
	}

	// 4. Format and output
	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), gctx)
	}
	return writeText(cmd.OutOrStdout(), gctx)
}

// exitCodeFor maps the context-builder error taxonomy to process exit codes.
func exitCodeFor(err error) int {
	var notInstalled *gitexec.NotInstalledError
	var repoErr *gitexec.RepositoryError
	var malformed *gitcontext.MalformedRecordError
	switch {
	case errors.As(err, &notInstalled):
		return clierr.CodeGitNotInstalled
	case errors.As(err, &repoErr):
		return clierr.CodeRepository
	case errors.As(err, &malformed):
		return clierr.CodeMalformedRecord
	default:
		return 1
	}
}

func readMessage(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeText(w io.Writer, gctx *gitcontext.Context) error {
	var b strings.Builder
	for i, c := range gctx.Commits {
		if i > 0 {
			b.WriteString("\n")
		}
		sha := c.SHA
		if sha == "" {
			sha = "(none)"
		}
		fmt.Fprintf(&b, "Commit:  %s\n", sha)
		if c.AuthorName != "" || c.AuthorEmail != "" {
			fmt.Fprintf(&b, "Author:  %s <%s>\n", c.AuthorName, c.AuthorEmail)
		}
		if !c.Date.IsZero() {
			fmt.Fprintf(&b, "Date:    %s\n", c.Date.Format("2006-01-02 15:04:05 -0700"))
		}
		if len(c.Parents) > 0 {
			fmt.Fprintf(&b, "Parents: %s\n", strings.Join(c.Parents, " "))
		}
		fmt.Fprintf(&b, "Merge:   %t\n", c.IsMergeCommit)
		fmt.Fprintf(&b, "Title:   %s\n", c.Message.Title)
		for _, line := range c.Message.Body {
			fmt.Fprintf(&b, "         %s\n", line)
		}
		for _, f := range c.ChangedFiles {
			fmt.Fprintf(&b, "File:    %s\n", f)
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing text output: %w", err)
	}
	return nil
}

// commitView is the JSON projection of a commit; the internal entities stay
// free of serialization tags.
type commitView struct {
	SHA           string    `json:"sha,omitempty"`
	AuthorName    string    `json:"author_name,omitempty"`
	AuthorEmail   string    `json:"author_email,omitempty"`
	Date          time.Time `json:"date,omitzero"`
	Parents       []string  `json:"parents"`
	IsMergeCommit bool      `json:"is_merge_commit"`
	Title         string    `json:"title"`
	Body          []string  `json:"body"`
	Full          string    `json:"full"`
	ChangedFiles  []string  `json:"changed_files"`
}

func writeJSON(w io.Writer, gctx *gitcontext.Context) error {
	views := make([]commitView, 0, len(gctx.Commits))
	for _, c := range gctx.Commits {
		views = append(views, commitView{
			SHA:           c.SHA,
			AuthorName:    c.AuthorName,
			AuthorEmail:   c.AuthorEmail,
			Date:          c.Date,
			Parents:       c.Parents,
			IsMergeCommit: c.IsMergeCommit,
			Title:         c.Message.Title,
			Body:          c.Message.Body,
			Full:          c.Message.Full,
			ChangedFiles:  c.ChangedFiles,
		})
	}
	data, err := json.MarshalIndent(map[string][]commitView{"commits": views}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	return nil
}
