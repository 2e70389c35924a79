package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/orgjournal/internal/config"
	"github.com/gorewood/orgjournal/internal/output"
)

func TestNew_FirstEntryOfMonth(t *testing.T) {
	dir := setupJournalEnv(t)

	stdout, stderr, err := execute(t, testDeps(nil), "new")
	if err != nil {
		t.Fatalf("new error = %v\nstderr: %s", err, stderr)
	}

	path := filepath.Join(dir, "2025-06.org")
	if want := path + ":8:9\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if !strings.Contains(stderr, "created "+path) || !strings.Contains(stderr, `added day heading "Sunday, 15 June"`) {
		t.Errorf("stderr hints missing: %q", stderr)
	}

	want := "#+TITLE: Journal 2025-06\n\n* Sunday, 15 June\n:PROPERTIES:\n:CREATED:  [2025-06-15 Sun 09:30]\n:END:\n\n** 0930 \n"
	if got := readJournal(t, dir, "2025-06.org"); got != want {
		t.Errorf("file =\n%q\nwant\n%q", got, want)
	}
}

func TestNew_SecondEntryAt(t *testing.T) {
	dir := setupJournalEnv(t)
	deps := testDeps(nil)

	executeJSON(t, deps, "new")
	pos := executeJSON(t, deps, "new", "--at", "14:05")

	got := readJournal(t, dir, "2025-06.org")
	if strings.Count(got, "* Sunday, 15 June") != 1 {
		t.Errorf("day heading duplicated:\n%s", got)
	}
	if !strings.HasSuffix(got, "** 0930 \n\n** 1405 \n") {
		t.Errorf("file should end with both entries:\n%q", got)
	}
	if pos.DayCreated || !pos.EntryCreated || pos.Line != 10 {
		t.Errorf("position = %+v", pos)
	}
}

func TestNew_Text(t *testing.T) {
	dir := setupJournalEnv(t)

	executeJSON(t, testDeps(nil), "new", "Went", "for", "a", "run")
	if got := readJournal(t, dir, "2025-06.org"); !strings.HasSuffix(got, "** 0930 Went for a run\n") {
		t.Errorf("entry text missing:\n%q", got)
	}
}

func TestNew_Stdin(t *testing.T) {
	dir := setupJournalEnv(t)
	deps := testDeps(nil)
	deps.stdin = strings.NewReader("Standup\n- shipped the release\n")

	pos := executeJSON(t, deps, "new", "-")
	got := readJournal(t, dir, "2025-06.org")
	if !strings.HasSuffix(got, "** 0930 Standup\n- shipped the release\n") {
		t.Errorf("stdin entry missing:\n%q", got)
	}
	if pos.Line != 9 {
		t.Errorf("cursor line = %d, want 9", pos.Line)
	}
}

func TestNew_Edit(t *testing.T) {
	dir := setupJournalEnv(t)
	t.Setenv(config.EnvEditor, "emacsclient -nw")
	var calls []editorCall

	if _, _, err := execute(t, testDeps(&calls), "new", "--edit"); err != nil {
		t.Fatalf("new --edit error = %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("editor launched %d times, want 1", len(calls))
	}
	want := editorCall{editor: "emacsclient -nw", path: filepath.Join(dir, "2025-06.org"), line: 8, column: 9}
	if calls[0] != want {
		t.Errorf("editor call = %+v, want %+v", calls[0], want)
	}
}

func TestNew_InvalidAt(t *testing.T) {
	setupJournalEnv(t)

	_, stderr, err := execute(t, testDeps(nil), "new", "--at", "teatime")
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want %d (err %v)", output.GetExitCode(err), output.ExitUserError, err)
	}
	if !strings.Contains(stderr, "invalid time") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestNew_InvalidLayout(t *testing.T) {
	setupJournalEnv(t)
	t.Setenv(config.EnvDateFormat, "%A")

	_, stderr, err := execute(t, testDeps(nil), "new")
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
	if !strings.Contains(stderr, "invalid journal layout") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestLast_FallsBackThenFindsEntry(t *testing.T) {
	dir := setupJournalEnv(t)
	deps := testDeps(nil)

	first := executeJSON(t, deps, "last")
	if !first.EntryCreated || !first.FileCreated {
		t.Errorf("first last = %+v, want a new entry", first)
	}

	executeJSON(t, deps, "new", "--at", "11:00", "later")
	second := executeJSON(t, deps, "last")
	if second.EntryCreated {
		t.Error("last should not create an entry when one exists")
	}
	if second.Line != 10 || second.Column != 1 || second.Day != "Sunday, 15 June" {
		t.Errorf("second last = %+v, want the 1100 entry heading", second)
	}
	if strings.Count(readJournal(t, dir, "2025-06.org"), "** ") != 2 {
		t.Error("last changed the number of entries")
	}
}
