// Package mcp provides a Model Context Protocol server for orgjournal.
// It exposes the journal commands as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/orgjournal/internal/journal"
)

// Option configures the server.
type Option func(*tools)

// WithClock sets the clock used for "now".
func WithClock(now func() time.Time) Option {
	return func(t *tools) { t.now = now }
}

// WithStatePath records every position a tool returns in the navigation
// state file, so the CLI's prev and next continue from there.
func WithStatePath(path string) Option {
	return func(t *tools) { t.statePath = path }
}

// WithLogger sets the logger for tool calls.
func WithLogger(l *log.Logger) Option {
	return func(t *tools) { t.log = l }
}

// NewServer creates an MCP server with all journal tools registered.
func NewServer(version string, j *journal.Journal, opts ...Option) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "orgjournal",
		Version: version,
	}, nil)

	t := &tools{journal: j, now: time.Now, log: log.New(io.Discard)}
	for _, opt := range opts {
		opt(t)
	}
	registerTools(server, t)
	return server
}

// tools holds what the handlers share. Calls are serialized because every
// write is a read-modify-write of a monthly file.
type tools struct {
	mu        sync.Mutex
	journal   *journal.Journal
	now       func() time.Time
	statePath string
	log       *log.Logger
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for write tools (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all journal tools to the server.
func registerTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "new_entry",
		Description: "Append a timestamped entry under today's day heading (or the day of 'at'), creating the monthly file and day heading when missing. The first line of text becomes the entry heading, the rest its body.",
		Annotations: writeAnnotations(),
	}, t.handleNewEntry)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "last_entry",
		Description: "Locate the most recent entry in this month's file. Creates a new entry when the month has none.",
		Annotations: writeAnnotations(),
	}, t.handleLastEntry)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "goto_day",
		Description: "Locate a day's heading, creating it when missing. Accepts a date (2025-06-15, yesterday, -3d) and/or a day offset.",
		Annotations: &mcp.ToolAnnotations{
			IdempotentHint:  true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, t.handleGotoDay)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_day",
		Description: "Return the org text of one day (heading, properties and entries) without modifying anything.",
		Annotations: readOnlyAnnotations(),
	}, t.handleReadDay)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "month",
		Description: "List the days of a month that have journal headings, with a plain-text calendar.",
		Annotations: readOnlyAnnotations(),
	}, t.handleMonth)
}
