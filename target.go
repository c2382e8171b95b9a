package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// TargetSource says where the collector's working directory comes from.
type TargetSource int

const (
	TargetCurrentDir TargetSource = iota
	TargetArgument
	TargetClipboard
	TargetInteractive
)

// Target is a resolved collector working directory.
type Target struct {
	Dir     string // Empty means the current directory
	cleanup func()
}

// Close removes any temporary clone backing the target.
func (t *Target) Close() {
	if t != nil && t.cleanup != nil {
		t.cleanup()
		t.cleanup = nil
	}
}

// TargetResolver turns the CLI inputs into a directory for the collector.
type TargetResolver struct {
	Clipboard Clipboard
	Pick      func(root string) (string, error)
	Clone     func(ctx context.Context, url string, progress io.Writer) (string, error)
	Progress  io.Writer
	Logger    *zap.Logger
}

// Resolve picks the target directory. Git URLs are cloned into a temporary
// directory that is removed by Target.Close.
func (r *TargetResolver) Resolve(ctx context.Context, source TargetSource, arg string) (*Target, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var raw string
	switch source {
	case TargetCurrentDir:
		return &Target{}, nil
	case TargetArgument:
		raw = arg
	case TargetClipboard:
		text, err := r.Clipboard.ReadAll()
		if err != nil {
			return nil, err
		}
		raw = strings.TrimSpace(text)
		if raw == "" {
			return nil, fmt.Errorf("%w: clipboard does not contain a path", ErrInvalidTarget)
		}
		logger.Debug("read target from clipboard", zap.String("path", raw))
	case TargetInteractive:
		dir, err := r.Pick(".")
		if err != nil {
			return nil, err
		}
		raw = dir
	default:
		return nil, fmt.Errorf("%w: unknown target source %d", ErrInvalidTarget, source)
	}

	dir, err := expandHome(raw)
	if err != nil {
		return nil, err
	}
	if isGitURL(dir) {
		clone, err := r.Clone(ctx, dir, r.Progress)
		if err != nil {
			return nil, err
		}
		logger.Debug("cloned repository", zap.String("url", dir), zap.String("dir", clone))
		return &Target{Dir: clone, cleanup: func() { _ = os.RemoveAll(clone) }}, nil
	}
	if !isDir(dir) {
		return nil, fmt.Errorf("%w: %q is not a directory", ErrInvalidTarget, dir)
	}
	return &Target{Dir: dir}, nil
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: cannot expand %q: %v", ErrInvalidTarget, path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// isDir reports whether path exists and is a directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
