package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorewood/orgjournal/internal/config"
	"github.com/gorewood/orgjournal/internal/journal"
)

// gatherDoctorChecks runs all health checks and returns results.
func gatherDoctorChecks(path string, now time.Time) *doctorResult {
	result := &doctorResult{
		Version: version,
		Summary: &doctorSummary{},
	}

	result.Config = append(result.Config, checkConfigFile(path))
	cfg, err := config.Load(path)
	if err != nil {
		result.Config = append(result.Config, checkResult{
			Name:    "Config",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "Fix the file or run 'orgjournal init --force'",
		})
		return summarize(result)
	}
	result.Config = append(result.Config, checkResult{Name: "Config", Status: checkPass, Message: "valid"})

	j, err := journal.New(cfg)
	if err != nil {
		result.Config = append(result.Config, checkResult{
			Name:    "Layout",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "Include enough of the date in date_heading_format to tell days in one file apart",
		})
		return summarize(result)
	}
	result.Config = append(result.Config, checkResult{Name: "Layout", Status: checkPass, Message: "day headings are unique per file"})

	result.Journal = append(result.Journal, checkJournalDir(cfg.Directory))
	result.Journal = append(result.Journal, checkMonthlyFile(j, now)...)
	result.Editor = append(result.Editor, checkEditor(cfg))

	return summarize(result)
}

func summarize(result *doctorResult) *doctorResult {
	allChecks := append(append(append([]checkResult{}, result.Config...), result.Journal...), result.Editor...)
	for _, check := range allChecks {
		switch check.Status {
		case checkPass:
			result.Summary.Passed++
		case checkWarn:
			result.Summary.Warnings++
		case checkFail:
			result.Summary.Failed++
		}
	}
	return result
}

// checkConfigFile reports whether a config file exists. Running on defaults
// is fine, so a missing file is only a warning.
func checkConfigFile(path string) checkResult {
	if path == "" {
		return checkResult{Name: "Config File", Status: checkWarn, Message: "no config directory could be determined"}
	}
	if _, err := os.Stat(path); err != nil {
		return checkResult{
			Name:    "Config File",
			Status:  checkWarn,
			Message: path + " not found, using defaults",
			Hint:    "Run 'orgjournal init' to write one",
		}
	}
	return checkResult{Name: "Config File", Status: checkPass, Message: path}
}

// checkJournalDir checks that the journal directory exists and is writable.
func checkJournalDir(dir string) checkResult {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return checkResult{
			Name:    "Journal Directory",
			Status:  checkWarn,
			Message: dir + " does not exist yet",
			Hint:    "It is created with the first entry, or run 'orgjournal init'",
		}
	}
	if err != nil || !info.IsDir() {
		return checkResult{Name: "Journal Directory", Status: checkFail, Message: dir + " is not a directory"}
	}

	probe, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return checkResult{Name: "Journal Directory", Status: checkFail, Message: dir + " is not writable: " + err.Error()}
	}
	_ = probe.Close()
	_ = os.Remove(probe.Name())
	return checkResult{Name: "Journal Directory", Status: checkPass, Message: dir}
}

// checkMonthlyFile inspects this month's file without creating it.
func checkMonthlyFile(j *journal.Journal, now time.Time) []checkResult {
	path := j.Layout().MonthlyPath(now)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []checkResult{{
			Name:    "This Month",
			Status:  checkPass,
			Message: filepath.Base(path) + " not started yet",
		}}
	}
	if err != nil {
		return []checkResult{{Name: "This Month", Status: checkFail, Message: err.Error()}}
	}

	outline := journal.ParseOutline(string(data))
	seen := make(map[string]int)
	var dups []string
	days, entries := 0, 0
	for _, h := range outline.Headings {
		switch h.Level {
		case 1:
			days++
			seen[h.Title]++
			if seen[h.Title] == 2 {
				dups = append(dups, h.Title)
			}
		case 2:
			entries++
		}
	}

	checks := []checkResult{{
		Name:    "This Month",
		Status:  checkPass,
		Message: fmt.Sprintf("%s: %d days, %d entries", filepath.Base(path), days, entries),
	}}
	if len(dups) > 0 {
		checks = append(checks, checkResult{
			Name:    "Day Headings",
			Status:  checkWarn,
			Message: "repeated: " + strings.Join(dups, "; "),
			Hint:    "New entries go under the last copy; merge the duplicates by hand",
		})
	}
	return checks
}

// checkEditor checks that the --edit editor can be found.
func checkEditor(cfg config.Config) checkResult {
	editor := resolveEditor(cfg)
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return checkResult{Name: "Editor", Status: checkWarn, Message: "no editor configured"}
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return checkResult{
			Name:    "Editor",
			Status:  checkWarn,
			Message: fields[0] + " not found in PATH",
			Hint:    "Set editor in the config file, $VISUAL or $EDITOR",
		}
	}
	return checkResult{Name: "Editor", Status: checkPass, Message: editor}
}
