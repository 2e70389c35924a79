package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/orgjournal/internal/config"
	"github.com/gorewood/orgjournal/internal/journal"
	"github.com/gorewood/orgjournal/internal/output"
)

var testNow = time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)

// editorCall records one editor launch.
type editorCall struct {
	editor string
	path   string
	line   int
	column int
}

// testDeps returns deps with a fixed clock and a recording editor.
func testDeps(calls *[]editorCall) cmdDeps {
	return cmdDeps{
		now: func() time.Time { return testNow },
		launch: func(_ context.Context, editor, path string, line, column int) error {
			if calls != nil {
				*calls = append(*calls, editorCall{editor, path, line, column})
			}
			return nil
		},
		stdin:       strings.NewReader(""),
		interactive: func(*cobra.Command) bool { return false },
	}
}

// setupJournalEnv points config, state and journal at temp dirs and returns
// the journal directory.
func setupJournalEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("ORGJOURNAL_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	t.Setenv(config.EnvDirectory, dir)
	for _, key := range []string{config.EnvFileFormat, config.EnvTitleFormat, config.EnvDateFormat, config.EnvTimeFormat, config.EnvEditor, "VISUAL", "EDITOR"} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
	return dir
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, deps cmdDeps, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmdInternal(deps)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// executeJSON runs args with --json and decodes the position it prints.
func executeJSON(t *testing.T, deps cmdDeps, args ...string) journal.Position {
	t.Helper()
	stdout, stderr, err := execute(t, deps, append([]string{"--json"}, args...)...)
	if err != nil {
		t.Fatalf("%v: error = %v\nstdout: %s\nstderr: %s", args, err, stdout, stderr)
	}
	var pos journal.Position
	if err := json.Unmarshal([]byte(stdout), &pos); err != nil {
		t.Fatalf("%v: invalid JSON %q: %v", args, stdout, err)
	}
	return pos
}

func readJournal(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"

	stdout, _, err := execute(t, testDeps(nil), "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "1.2.3") {
		t.Errorf("--version output should contain version: %q", stdout)
	}
	if !strings.Contains(stdout, "orgjournal") {
		t.Errorf("--version output should contain 'orgjournal': %q", stdout)
	}
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := execute(t, testDeps(nil), "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, expected := range []string{"orgjournal", "Usage:", "--json", "new", "calendar", "serve"} {
		if !strings.Contains(stdout, expected) {
			t.Errorf("--help output should contain %q", expected)
		}
	}
}

func TestRootCommand_JSONWithoutSubcommand(t *testing.T) {
	setupJournalEnv(t)
	stdout, _, err := execute(t, testDeps(nil), "--json")
	if err == nil {
		t.Fatal("expected error")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := result["error"]; !ok {
		t.Errorf("JSON error output missing 'error': %v", result)
	}
}

func TestRootCommand_Groups(t *testing.T) {
	cmd := newRootCmdInternal(testDeps(nil))
	want := map[string]string{
		"new": "journal", "last": "journal",
		"today": "navigate", "prev": "navigate", "next": "navigate", "open": "navigate", "calendar": "navigate", "show": "navigate",
		"init": "admin", "config": "admin", "doctor": "admin", "serve": "admin",
	}
	for name, group := range want {
		sub, _, err := cmd.Find([]string{name})
		if err != nil || sub.Name() != name {
			t.Errorf("command %q not registered", name)
			continue
		}
		if sub.GroupID != group {
			t.Errorf("%s group = %q, want %q", name, sub.GroupID, group)
		}
	}
}

func TestSessionFail_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"modified file is a conflict", journal.ErrModified, output.ExitConflict},
		{"layout is a user error", journal.ErrLayout, output.ExitUserError},
		{"exit error passes through", output.NewUserError("bad"), output.ExitUserError},
		{"anything else is a system error", os.ErrPermission, output.ExitSystemError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := &session{printer: output.NewPrinter(&buf, false, false)}
			if got := output.GetExitCode(s.fail(tt.err)); got != tt.want {
				t.Errorf("exit code = %d, want %d", got, tt.want)
			}
			if !strings.Contains(buf.String(), "Error") {
				t.Errorf("error not printed: %q", buf.String())
			}
		})
	}
}
