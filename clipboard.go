package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/term"
)

// Clipboard is the system clipboard as a single text slot.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// systemClipboard uses the platform clipboard (pbcopy, xclip, xsel,
// wl-copy, or the Windows API).
type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("%w: no clipboard utility available", ErrClipboardUnavailable)
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: failed to read clipboard: %v", ErrClipboardUnavailable, err)
	}
	return text, nil
}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility available", ErrClipboardUnavailable)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: failed to copy content to clipboard: %v", ErrClipboardUnavailable, err)
	}
	return nil
}

// osc52Clipboard asks the terminal emulator to set the clipboard, which
// also works over SSH. It cannot read the clipboard back.
type osc52Clipboard struct {
	out *os.File
}

func (osc52Clipboard) ReadAll() (string, error) {
	return "", fmt.Errorf("%w: OSC 52 mode cannot read the clipboard", ErrClipboardUnavailable)
}

func (c osc52Clipboard) WriteAll(text string) error {
	if !term.IsTerminal(int(c.out.Fd())) {
		return fmt.Errorf("%w: OSC 52 needs a terminal on stdout", ErrClipboardUnavailable)
	}
	return writeOSC52(c.out, text)
}

func osc52Sequence(data string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(data))
	seq := fmt.Sprintf("\x1b]52;c;%s\x07", encoded)
	if os.Getenv("TMUX") != "" {
		return "\x1bPtmux;" + seq + "\x1b\\"
	}
	if strings.HasPrefix(os.Getenv("TERM"), "screen") {
		return "\x1bP" + seq + "\x1b\\"
	}
	return seq
}

func writeOSC52(w io.Writer, data string) error {
	if _, err := io.WriteString(w, osc52Sequence(data)); err != nil {
		return fmt.Errorf("%w: failed to write OSC 52 sequence: %v", ErrClipboardUnavailable, err)
	}
	return nil
}

// NewClipboard picks the clipboard backend.
func NewClipboard(osc52 bool) Clipboard {
	if osc52 {
		return osc52Clipboard{out: os.Stdout}
	}
	return systemClipboard{}
}
