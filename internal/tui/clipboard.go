package tui

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jmylchreest/shopfront/internal/adapter/output"
	"github.com/jmylchreest/shopfront/internal/config"
	"github.com/jmylchreest/shopfront/internal/model"
)

// copyText copies text to the system clipboard.
func copyText(text string, cfg *config.Config) error {
	// Get clipboard command
	cmd := detectClipboardCommand(cfg)
	if cmd == "" {
		return fmt.Errorf("no clipboard command available")
	}

	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return fmt.Errorf("invalid clipboard command")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := exec.CommandContext(ctx, parts[0], parts[1:]...)
	c.Stdin = strings.NewReader(text)

	return c.Run()
}

// detectClipboardCommand returns the clipboard command to use.
func detectClipboardCommand(cfg *config.Config) string {
	if cfg != nil && cfg.Clipboard.Command != "" {
		return cfg.Clipboard.Command
	}

	// Wayland
	if _, err := exec.LookPath("wl-copy"); err == nil {
		return "wl-copy"
	}

	// X11
	if _, err := exec.LookPath("xclip"); err == nil {
		return "xclip -selection clipboard"
	}
	if _, err := exec.LookPath("xsel"); err == nil {
		return "xsel --clipboard --input"
	}

	// macOS
	if _, err := exec.LookPath("pbcopy"); err == nil {
		return "pbcopy"
	}

	return ""
}

// encodeProducts renders products with the named output format.
func encodeProducts(products []model.Product, format output.FormatType) (string, error) {
	var buf bytes.Buffer
	f := output.NewFormatter(format, output.DefaultFormatterOptions())
	if err := f.Format(&buf, products); err != nil {
		return "", err
	}
	return buf.String(), nil
}
