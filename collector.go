package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

const defaultCollector = "yek"

// Collector runs the external file-concatenation tool and captures its JSON output.
type Collector struct {
	Binary string
	Args   []string // Extra arguments placed before --json
	Dir    string   // Working directory; when set, "." is appended to the arguments
	Env    []string // Extra environment, appended to os.Environ()
	Logger *zap.Logger
}

func (c *Collector) binary() string {
	if c.Binary == "" {
		return defaultCollector
	}
	return c.Binary
}

func (c *Collector) args() []string {
	args := append([]string{}, c.Args...)
	args = append(args, "--json")
	if c.Dir != "" {
		args = append(args, ".")
	}
	return args
}

// commandLine is the user-facing form of the invocation used in messages.
func (c *Collector) commandLine() string {
	return strings.Join(append([]string{c.binary()}, c.args()...), " ")
}

// Run executes the collector once and returns its stdout.
// It blocks until the process exits.
func (c *Collector) Run(ctx context.Context) ([]byte, error) {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cmd := exec.CommandContext(ctx, c.binary(), c.args()...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running collector",
		zap.String("binary", c.binary()),
		zap.Strings("args", c.args()),
		zap.String("dir", c.Dir))

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("`%s` interrupted: %w", c.commandLine(), ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &CollectorFailedError{
				Command:  c.commandLine(),
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return nil, fmt.Errorf("%w: failed to execute `%s` (%v). Is '%s' in your PATH?",
			ErrCollectorUnavailable, c.commandLine(), err, c.binary())
	}

	logger.Debug("collector finished", zap.Int("stdout_bytes", stdout.Len()))
	return stdout.Bytes(), nil
}

// rawRecord uses pointers so that missing fields can be told apart from empty ones.
type rawRecord struct {
	Filename *string `json:"filename"`
	Content  *string `json:"content"`
}

// DecodeRecords parses the collector output: a JSON array of
// {"filename": string, "content": string} objects. Unknown fields are ignored.
func DecodeRecords(data []byte) ([]FileRecord, error) {
	var raw []*rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, decodeError(err)
	}
	if raw == nil {
		return nil, decodeError(errors.New("expected a JSON array, got null"))
	}

	records := make([]FileRecord, 0, len(raw))
	for i, r := range raw {
		switch {
		case r == nil:
			return nil, decodeError(fmt.Errorf("element %d is null", i))
		case r.Filename == nil:
			return nil, decodeError(fmt.Errorf("element %d has no \"filename\"", i))
		case r.Content == nil:
			return nil, decodeError(fmt.Errorf("element %d (%s) has no \"content\"", i, *r.Filename))
		}
		records = append(records, FileRecord{Filename: *r.Filename, Content: *r.Content})
	}
	return records, nil
}

func decodeError(err error) error {
	return fmt.Errorf("%w: %v. Is the collector output format compatible (JSON array of filename/content objects)?", ErrDecode, err)
}
