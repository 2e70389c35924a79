package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestPrinter_JSON_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	data := map[string]any{
		"status": "created",
		"path":   "/tmp/journal/2025-06.org",
	}

	if err := printer.Success(data); err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}

	if result["status"] != "created" {
		t.Errorf("status = %v, want %q", result["status"], "created")
	}
	if result["path"] != "/tmp/journal/2025-06.org" {
		t.Errorf("path = %v, want %q", result["path"], "/tmp/journal/2025-06.org")
	}
}

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(NewUserError("invalid date \"2025-13-01\""))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}

	if result["error"] != "invalid date \"2025-13-01\"" {
		t.Errorf("error = %v", result["error"])
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitUserError {
		t.Errorf("code = %v, want %d", result["code"], ExitUserError)
	}
}

func TestPrinter_Error_PlainErrorDefaultsToUserCode(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(errors.New("boom"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if code, _ := result["code"].(float64); int(code) != ExitUserError {
		t.Errorf("code = %v, want %d", result["code"], ExitUserError)
	}
}

func TestPrinter_Human_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	if err := printer.Success(map[string]any{"message": "Entry created"}); err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	if !strings.Contains(buf.String(), "Entry created") {
		t.Errorf("output = %q, want to contain 'Entry created'", buf.String())
	}
}

func TestPrinter_Human_ErrorGoesToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	printer := NewPrinter(&stdout, false, false).WithStderr(&stderr)

	printer.Error(NewSystemError("permission denied"))

	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", stdout.String())
	}
	if got := stderr.String(); got != "Error: permission denied\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestPrinter_Position(t *testing.T) {
	tests := []struct {
		name string
		json bool
		want string
	}{
		{name: "human", json: false, want: "/j/2025-06.org:8:9\n"},
		{name: "json", json: true, want: "{\n  \"column\": 9,\n  \"line\": 8,\n  \"path\": \"/j/2025-06.org\"\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf, tt.json, false).Position("/j/2025-06.org", 8, 9)
			if buf.String() != tt.want {
				t.Errorf("Position() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrinter_Print(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Print("Hello, %s!", "journal")

	if buf.String() != "Hello, journal!" {
		t.Errorf("output = %q, want %q", buf.String(), "Hello, journal!")
	}
}

func TestPrinter_Warn(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Warn("no entries in %s", "2025-06.org")
	if !strings.Contains(buf.String(), "Warning: no entries in 2025-06.org") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	NewPrinter(&buf, true, false).Warn("stale state")
	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["warning"] != "stale state" {
		t.Errorf("warning = %v, want %q", result["warning"], "stale state")
	}
}

func TestPrinter_Stderr_SilentInJSON(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, true, false).Stderr("hint\n")
	if buf.Len() != 0 {
		t.Errorf("Stderr() should be silent in JSON mode, got %q", buf.String())
	}
}

func TestPrinter_Box_PlainWithoutTTY(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Box("June 2025", "grid")
	if buf.String() != "June 2025\n\ngrid\n" {
		t.Errorf("Box() = %q", buf.String())
	}
}

func TestPrinter_SectionAndKeyValue(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Section("Journal")
	printer.KeyValue("Directory", "/home/me/journal")

	want := "\nJournal\n───────\nDirectory: /home/me/journal\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestErrorJSON_Format(t *testing.T) {
	result := ErrorJSON("test error", ExitConflict)

	var parsed struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	if err := json.Unmarshal(result, &parsed); err != nil {
		t.Fatalf("Failed to parse ErrorJSON output: %v", err)
	}

	if parsed.Error != "test error" {
		t.Errorf("error = %q, want %q", parsed.Error, "test error")
	}
	if parsed.Code != ExitConflict {
		t.Errorf("code = %d, want %d", parsed.Code, ExitConflict)
	}
}
