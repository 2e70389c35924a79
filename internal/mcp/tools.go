package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/orgjournal/internal/calendar"
	"github.com/gorewood/orgjournal/internal/journal"
	"github.com/gorewood/orgjournal/internal/state"
)

// --- Shared types ---

// PositionOutput is where a tool left the journal cursor.
type PositionOutput struct {
	Path         string `json:"path"                    jsonschema:"monthly org file"`
	Day          string `json:"day,omitempty"           jsonschema:"day heading text"`
	Date         string `json:"date"                    jsonschema:"calendar day of the position (YYYY-MM-DD)"`
	Line         int    `json:"line"                    jsonschema:"1-based line of the cursor"`
	Column       int    `json:"column"                  jsonschema:"1-based column of the cursor"`
	FileCreated  bool   `json:"file_created,omitempty"  jsonschema:"the monthly file was created"`
	DayCreated   bool   `json:"day_created,omitempty"   jsonschema:"the day heading was created"`
	EntryCreated bool   `json:"entry_created,omitempty" jsonschema:"an entry heading was created"`
}

func toPositionOutput(pos journal.Position) PositionOutput {
	return PositionOutput{
		Path:         pos.Path,
		Day:          pos.Day,
		Date:         pos.Date.Format(time.DateOnly),
		Line:         pos.Line,
		Column:       pos.Column,
		FileCreated:  pos.FileCreated,
		DayCreated:   pos.DayCreated,
		EntryCreated: pos.EntryCreated,
	}
}

// record stores pos as the navigation state when a state file is configured.
func (t *tools) record(pos journal.Position) {
	if t.statePath == "" {
		return
	}
	if err := state.Record(t.statePath, pos.Date, pos, t.now()); err != nil {
		t.log.Warn("could not record position", "err", err)
	}
}

// --- new_entry ---

// NewEntryInput is the input for the new_entry tool.
type NewEntryInput struct {
	Text string `json:"text,omitempty" jsonschema:"entry text; first line joins the heading"`
	At   string `json:"at,omitempty"   jsonschema:"entry time: 15:04, 2025-06-15 15:04, RFC 3339 or a day reference; default now"`
}

func (t *tools) handleNewEntry(_ context.Context, _ *mcp.CallToolRequest, input NewEntryInput) (*mcp.CallToolResult, PositionOutput, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	at := now
	if input.At != "" {
		var err error
		if at, err = journal.ParseTime(input.At, now); err != nil {
			return nil, PositionOutput{}, err
		}
	}

	pos, err := t.journal.NewEntry(at, input.Text)
	if err != nil {
		return nil, PositionOutput{}, fmt.Errorf("creating entry: %w", err)
	}
	t.log.Debug("mcp new_entry", "path", pos.Path, "line", pos.Line)
	t.record(pos)
	return nil, toPositionOutput(pos), nil
}

// --- last_entry ---

// LastEntryInput is the input for the last_entry tool (no parameters needed).
type LastEntryInput struct{}

func (t *tools) handleLastEntry(_ context.Context, _ *mcp.CallToolRequest, _ LastEntryInput) (*mcp.CallToolResult, PositionOutput, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	pos, err := t.journal.LastEntry(now)
	if err != nil {
		return nil, PositionOutput{}, fmt.Errorf("finding last entry: %w", err)
	}
	t.record(pos)
	return nil, toPositionOutput(pos), nil
}

// --- goto_day ---

// GotoDayInput is the input for the goto_day tool.
type GotoDayInput struct {
	Date   string `json:"date,omitempty"   jsonschema:"day reference: 2025-06-15, today, yesterday, -3d; default today"`
	Offset int    `json:"offset,omitempty" jsonschema:"days to add to date, negative for earlier"`
}

func (t *tools) handleGotoDay(_ context.Context, _ *mcp.CallToolRequest, input GotoDayInput) (*mcp.CallToolResult, PositionOutput, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	day, err := journal.ParseDay(input.Date, t.now())
	if err != nil {
		return nil, PositionOutput{}, err
	}
	day = day.AddDate(0, 0, input.Offset)

	pos, err := t.journal.GotoDay(day)
	if err != nil {
		return nil, PositionOutput{}, fmt.Errorf("opening day: %w", err)
	}
	t.record(pos)
	return nil, toPositionOutput(pos), nil
}

// --- read_day ---

// ReadDayInput is the input for the read_day tool.
type ReadDayInput struct {
	Date string `json:"date,omitempty" jsonschema:"day reference: 2025-06-15, today, yesterday, -3d; default today"`
}

// ReadDayOutput is the output for the read_day tool.
type ReadDayOutput struct {
	Date  string `json:"date"           jsonschema:"resolved date (YYYY-MM-DD)"`
	Path  string `json:"path"           jsonschema:"monthly org file"`
	Found bool   `json:"found"          jsonschema:"whether the day has a heading"`
	Text  string `json:"text,omitempty" jsonschema:"org text of the day"`
}

func (t *tools) handleReadDay(_ context.Context, _ *mcp.CallToolRequest, input ReadDayInput) (*mcp.CallToolResult, ReadDayOutput, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	day, err := journal.ParseDay(input.Date, t.now())
	if err != nil {
		return nil, ReadDayOutput{}, err
	}
	text, found, err := t.journal.ReadDay(day)
	if err != nil {
		return nil, ReadDayOutput{}, err
	}
	return nil, ReadDayOutput{
		Date:  day.Format(time.DateOnly),
		Path:  t.journal.Layout().MonthlyPath(day),
		Found: found,
		Text:  text,
	}, nil
}

// --- month ---

// MonthInput is the input for the month tool.
type MonthInput struct {
	Month string `json:"month,omitempty" jsonschema:"month as YYYY-MM or a day reference; default this month"`
}

// MonthOutput is the output for the month tool.
type MonthOutput struct {
	Month    string `json:"month"          jsonschema:"YYYY-MM"`
	Days     []int  `json:"days"           jsonschema:"days of the month that have a heading"`
	Calendar string `json:"calendar"       jsonschema:"plain-text month grid; * marks days with a heading"`
}

func (t *tools) handleMonth(_ context.Context, _ *mcp.CallToolRequest, input MonthInput) (*mcp.CallToolResult, MonthOutput, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	month, err := journal.ParseMonth(input.Month, now)
	if err != nil {
		return nil, MonthOutput{}, err
	}
	days, err := t.journal.MonthDays(month)
	if err != nil {
		return nil, MonthOutput{}, err
	}
	if days == nil {
		days = []int{}
	}
	grid := calendar.Render(month, calendar.MonthDays(month, days, now, time.Time{}), calendar.PlainOptions())
	return nil, MonthOutput{
		Month:    month.Format("2006-01"),
		Days:     days,
		Calendar: grid,
	}, nil
}
