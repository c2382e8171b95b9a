package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// isGitURL checks if the input string looks like a Git repository URL.
// Only the .git suffix and the SSH "git@" form are recognised; plain
// https:// URLs are ambiguous.
func isGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") && !isDir(input) ||
		strings.HasPrefix(input, "git@")
}

// cloneGitRepo shallow-clones url into a new temporary directory and returns
// its path. The caller removes the directory.
func cloneGitRepo(ctx context.Context, url string, progress io.Writer) (string, error) {
	tempDir, err := os.MkdirTemp("", "yekwrap-git-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	_, err = git.PlainCloneContext(ctx, tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      progress,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("%w: failed to clone repository '%s': %v", ErrInvalidTarget, url, err)
	}
	return tempDir, nil
}
