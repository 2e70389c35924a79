package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gorewood/orgjournal/internal/config"
)

// editorLauncher opens path at line and column in editor.
type editorLauncher func(ctx context.Context, editor, path string, line, column int) error

// resolveEditor picks the editor for --edit: the config's editor, then
// $VISUAL, then $EDITOR, then vi.
func resolveEditor(cfg config.Config) string {
	for _, candidate := range []string{cfg.Editor, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return "vi"
}

// editorArgs builds the argument list for editor. Emacs-style editors take
// +LINE:COLUMN, everything else +LINE.
func editorArgs(editor, path string, line, column int) ([]string, error) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return nil, errors.New("no editor configured")
	}
	jump := fmt.Sprintf("+%d", line)
	switch strings.TrimSuffix(filepath.Base(fields[0]), ".exe") {
	case "emacs", "emacsclient", "mg", "nano":
		jump = fmt.Sprintf("+%d:%d", line, column)
	}
	return append(fields, jump, path), nil
}

// launchEditor runs the editor attached to the terminal and waits for it.
func launchEditor(ctx context.Context, editor, path string, line, column int) error {
	args, err := editorArgs(editor, path, line, column)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", args[0], err)
	}
	return nil
}
